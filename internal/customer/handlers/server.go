// Package handlers provides the HTTP server and route handlers exposing the
// CustomerService, translating between transport DTOs and domain models.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rbarros/cadastro/internal/customer/auth"
)

// Server wraps the HTTP server serving the customer API.
type Server struct {
	httpServer   *http.Server
	router       *gin.Engine
	logger       *zap.Logger
	httpEndpoint string
}

// NewServer constructs a Server listening on the given port.
func NewServer(httpPort int, logger *zap.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	return &Server{
		httpServer:   &http.Server{},
		router:       router,
		logger:       logger,
		httpEndpoint: fmt.Sprintf(":%d", httpPort),
	}
}

// RegisterRoutes mounts the customer routes behind the JWT middleware.
func (s *Server) RegisterRoutes(h *CustomerHandler, jwtSecret string) {
	s.router.Use(auth.Middleware(jwtSecret))

	v1 := s.router.Group("/v1")
	{
		v1.POST("/customers", h.CreateCustomer)
		v1.GET("/customers", h.ListCustomers)
		v1.GET("/customers/:id", h.GetCustomer)
		v1.PUT("/customers/:id", h.UpdateCustomer)
		v1.DELETE("/customers/:id", h.DeleteCustomer)
	}

	s.httpServer.Handler = s.router
	s.httpServer.Addr = s.httpEndpoint
}

// Start runs the HTTP server, returning on the first serve error.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("endpoint", s.httpEndpoint))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP serve error: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.logger.Info("Server stopped")
}
