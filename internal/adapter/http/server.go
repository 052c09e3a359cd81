// Package http exposes the assessment engine over a JSON API along with
// health, readiness, and metrics endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/monsoonworks/rainharvest-service/internal/domain"
)

// AssessmentService is the engine surface the API depends on.
type AssessmentService interface {
	ComputeAssessment(ctx context.Context, input domain.AssessmentInput) (domain.Assessment, error)
	ComputeCommunityView(ctx context.Context, neighborhoodID, requestingUserID string) (domain.CommunityView, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the assessment API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the gin router and wraps it in an http.Server.
func NewServer(addr string, service AssessmentService, ready ReadinessChecker, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	router.GET("/healthz", s.handleHealth)
	router.GET("/readyz", handleReady(ready))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.POST("/assessments", s.handleCreateAssessment(service))
	api.GET("/community/:neighborhood", s.handleCommunityView(service))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleCreateAssessment runs the full pipeline for one submission. Numeric
// edge cases (zero area, zero demand) still succeed with zero-valued output;
// only a malformed body or a store failure is an error.
func (s *Server) handleCreateAssessment(service AssessmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input domain.AssessmentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		record, err := service.ComputeAssessment(c.Request.Context(), input)
		if err != nil {
			s.logger.Error("assessment failed", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "assessment could not be saved"})
			return
		}
		c.JSON(http.StatusCreated, record)
	}
}

func (s *Server) handleCommunityView(service AssessmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		neighborhoodID := c.Param("neighborhood")
		userID := c.Query("user_id")

		view, err := service.ComputeCommunityView(c.Request.Context(), neighborhoodID, userID)
		if err != nil {
			s.logger.Error("community view failed", "neighborhood_id", neighborhoodID, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "community data unavailable"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
