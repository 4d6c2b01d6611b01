package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"crypto-dashboard-service/internal/logger"
)

// Server encapsulates HTTP server configuration
type Server struct {
	httpServer *http.Server
	port       string
}

// New creates a new server instance
func New(handler http.Handler, port string) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		port: port,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	logger.GetLogger().WithFields(map[string]interface{}{
		"port": s.port,
		"endpoints": []string{
			"GET  /api/v1/dashboard?coin=bitcoin&days=7",
			"GET  /api/v1/dashboard?coin=bitcoin&from=2024-01-01&to=2024-01-31",
			"GET  /api/v1/dashboard/current",
			"GET  /api/v1/coins",
			"GET  /api/v1/preferences/theme",
			"GET  /ws",
			"GET  /health",
			"GET  /metrics",
			"GET  /swagger/",
		},
	}).Info("HTTP server starting")

	return s.httpServer.ListenAndServe()
}

// Stop stops the HTTP server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logger.GetLogger().WithField("port", s.port).Info("Stopping HTTP server gracefully")
	return s.httpServer.Shutdown(ctx)
}

// Port returns the configured port
func (s *Server) Port() string {
	return s.port
}
