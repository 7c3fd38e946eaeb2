// Package api configures and exposes the HTTP server, routes, metrics and
// related middleware for the email scanning service.
package api

import (
	"net/http"
	"time"

	"spamoverflow/internal/api/handler"
	"spamoverflow/internal/config"
	"spamoverflow/pkg/controller"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options holds configuration for the HTTP server. It is typically
// created from a config.Config via NewOptions. Zero duration values fall
// back to the net/http defaults.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string

	// Environment selects the gin mode; anything but "development" runs in
	// release mode.
	Environment string
}

// NewOptions constructs an Options value from the provided application
// configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		Environment:       cfg.Environment,
	}
}

// Deps holds the services the HTTP layer dispatches to.
type Deps struct {
	handler.Deps
}

// NewServer wires up and returns a configured *http.Server. It sets up:
// - the v1 API routes under /api/v1
// - a Prometheus metrics endpoint (MetricsPath)
// - pprof endpoints for profiling
// and applies recovery, request logging and CORS middlewares.
func NewServer(deps Deps, opts Options) *http.Server {
	if opts.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(controller.Recovery(), controller.Logger(), cors.Default())

	router.GET(opts.MetricsPath, gin.WrapH(promhttp.Handler()))
	router.GET("/debug/pprof/*profile", gin.WrapH(controller.PprofMux()))

	h := handler.New(deps.Deps)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health)

		v1.POST("/customers/:customer_id/emails", h.CreateEmail)
		v1.GET("/customers/:customer_id/emails", h.ListEmails)
		v1.GET("/customers/:customer_id/emails/:id", h.GetEmail)

		v1.GET("/customers/:customer_id/reports/actors", h.Actors)
		v1.GET("/customers/:customer_id/reports/domains", h.Domains)
		v1.GET("/customers/:customer_id/reports/recipients", h.Recipients)
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           router,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}
}
