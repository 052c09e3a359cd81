// Package domain models rooftop rainwater-harvesting assessments.
//
// # Calculation chain
//
// An assessment starts from four user inputs: a coordinate pair, a roof area
// in square meters, a roof material, and a daily water demand in liters. The
// chain runs:
//
//	climate resolution → monthly harvest → system sizing
//	                   → cost estimate  → environmental impact
//	                   → recharge sizing → sustainability score → achievements
//
// Every stage is a pure function of its inputs. No stage returns an error for
// degenerate numeric input; malformed or out-of-range values are coerced to
// zero and the chain produces a zero-valued (but structurally complete)
// result. NaN and Inf never cross a stage boundary.
//
// # Harvest conventions
//
// Harvest volume per month:
//
//	liters = roofArea × max(0, rainfallMm − firstFlush) × runoff × storageEff
//
// First-flush loss is the initial 2 mm of each month's rainfall, discarded to
// avoid contaminant-laden first runoff. Storage efficiency (0.95) accounts for
// conveyance and overflow losses. Runoff coefficients by roof material:
//
//	concrete 0.85 | metal 0.90 | tiled 0.75 | other (and unknown) 0.70
//
// Monthly volumes are rounded to whole liters before summing, so the annual
// total is exactly the sum of the twelve monthly values.
//
// # Climate resolution
//
// Rainfall profiles resolve through three tiers, first match wins:
//
//  1. Named city within that entry's own match radius (confidence 0.9).
//     An entry only qualifies inside its declared radius; ties go to the
//     nearest qualifying entry, not the globally nearest.
//  2. Ordered climate-zone predicates over latitude/longitude bands such as
//     the Western Ghats, northeast hills, Thar desert, and coastal belts
//     (confidence 0.7).
//  3. National-average monthly pattern (confidence 0.6).
//
// An optional external observation source can pre-empt the static tiers; it
// is best-effort enrichment and any failure falls through silently.
//
// Soil type resolves independently into one of five bands, each with a fixed
// percolation rate between 0.4 and 0.9, used only for recharge-structure
// sizing.
package domain
