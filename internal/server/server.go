// Package server exposes the gap-fill pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"github.com/abhisek/gapfill/internal/gapfill"
)

// Pipeline is the part of the generator the handlers call.
type Pipeline interface {
	Analyze(ctx context.Context, passage string) (*gapfill.Analysis, error)
	Generate(ctx context.Context, passage string) (*gapfill.Result, error)
}

// Artifacts resolves saved pages for download.
type Artifacts interface {
	Resolve(ref string) (string, error)
	Read(ref string) ([]byte, error)
}

// Options configures the server. Zero values disable the matching limit.
type Options struct {
	Addr           string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	CORSOrigins    []string
	MetricsEnabled bool
	Logger         *zap.Logger
}

// Server is the HTTP front end.
type Server struct {
	pipeline  Pipeline
	artifacts Artifacts
	opts      Options
	log       *zap.Logger
	router    *gin.Engine
}

// New builds the router. Routes are registered before the Prometheus
// middleware so every route is measured.
func New(pipeline Pipeline, artifacts Artifacts, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := &Server{
		pipeline:  pipeline,
		artifacts: artifacts,
		opts:      opts,
		log:       opts.Logger,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(s.log))
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(opts.CORSOrigins)))

	var p *ginprometheus.Prometheus
	if opts.MetricsEnabled {
		p = ginprometheus.NewPrometheus("gin")
		// Collapse artifact names so download metrics stay low-cardinality.
		p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
			if c.FullPath() != "" {
				return c.FullPath()
			}
			return "unmatched"
		}
	}

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", health)
	router.HEAD("/health", health)

	api := router.Group("/")
	api.Use(requestTimeout(opts.RequestTimeout), bodyLimit(opts.MaxBodyBytes))
	api.GET("/", s.handleIndex)
	api.POST("/generate", s.handleGenerate)
	api.GET("/download/*path", s.handleDownload)
	api.POST("/api/analyze", s.handleAnalyze)
	api.POST("/api/gapfill", s.handleGapfill)

	if p != nil {
		p.Use(router)
	}

	s.router = router
	return s
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader, "Content-Disposition"}
	cfg.MaxAge = 12 * time.Hour
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting HTTP server", zap.String("addr", s.opts.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
