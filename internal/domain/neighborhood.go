package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NeighborhoodID derives a deterministic grouping key from address text so
// assessments from the same area cluster together for community comparison.
// The key is a short hash of the normalized city and state; the same address
// always maps to the same neighborhood. Records with no usable address fall
// into the "unlocated" bucket.
func NeighborhoodID(loc Location) string {
	city := normalizeAddressPart(loc.City)
	state := normalizeAddressPart(loc.State)
	if city == "" && state == "" {
		city = normalizeAddressPart(loc.Address)
	}
	if city == "" && state == "" {
		return "unlocated"
	}

	hash := sha256.Sum256([]byte(city + "|" + state))
	return hex.EncodeToString(hash[:8])
}

func normalizeAddressPart(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
