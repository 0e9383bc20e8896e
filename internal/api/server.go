// Package api exposes the reconciliation engine over HTTP.
//
// Routes:
//
//	GET    /health               liveness probe
//	POST   /api/reconcile        synchronous pass over the posted records
//	POST   /api/jobs             start an asynchronous reconciliation job
//	GET    /api/jobs             list all jobs
//	GET    /api/jobs/:jobId      job status and, once completed, its result
//	DELETE /api/jobs/:jobId      cancel a running job
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/veloxpay/reconciler/internal/application/reconcile"
	"github.com/veloxpay/reconciler/internal/application/service"
	"github.com/veloxpay/reconciler/internal/domain/record"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config       Config
	router       *gin.Engine
	httpServer   *http.Server
	logger       *slog.Logger
	orchestrator *reconcile.Orchestrator
	jobs         *service.ReconcileService
}

// ReconcileRequest is the body for both the synchronous and the job-based
// reconcile endpoints.
type ReconcileRequest struct {
	Transactions []record.Transaction `json:"transactions"`
	Attachments  []record.Attachment  `json:"attachments"`
	Workers      int                  `json:"workers,omitempty"`
}

// NewServer creates a new API server.
func NewServer(cfg Config, orchestrator *reconcile.Orchestrator, jobs *service.ReconcileService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:       cfg,
		logger:       logger,
		orchestrator: orchestrator,
		jobs:         jobs,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", s.health)

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/reconcile", s.reconcileSync)
		apiGroup.POST("/jobs", s.startJob)
		apiGroup.GET("/jobs", s.listJobs)
		apiGroup.GET("/jobs/:jobId", s.getJob)
		apiGroup.DELETE("/jobs/:jobId", s.cancelJob)
	}

	s.router = router
	return s
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// reconcileSync runs one pass inline and returns the mapping. Suitable for
// small record sets; large ones should go through /api/jobs.
func (s *Server) reconcileSync(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.orchestrator.Run(c.Request.Context(), req.Transactions, req.Attachments, reconcile.Options{
		Workers: req.Workers,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) startJob(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	jobID, err := s.jobs.StartJob(c.Request.Context(), service.JobRequest{
		Transactions: req.Transactions,
		Attachments:  req.Attachments,
		Workers:      req.Workers,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"job_id": jobID})
}

func (s *Server) listJobs(c *gin.Context) {
	c.JSON(http.StatusOK, s.jobs.ListJobs())
}

func (s *Server) getJob(c *gin.Context) {
	job, err := s.jobs.GetJob(c.Param("jobId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) cancelJob(c *gin.Context) {
	if err := s.jobs.CancelJob(c.Param("jobId")); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Router returns the gin engine for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}
