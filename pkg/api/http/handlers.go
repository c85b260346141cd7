package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GreetingResponse is the body of GET /
type GreetingResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// StatusResponse is the body of the probe endpoints
type StatusResponse struct {
	Status string `json:"status"`
}

var (
	greetingBody = GreetingResponse{Message: "Hello, World!", Status: "healthy"}
	healthBody   = StatusResponse{Status: "healthy"}
	readyBody    = StatusResponse{Status: "ready"}
)

// handleRoot handles the greeting
func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, greetingBody)
}

// handleHealth handles liveness checks
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthBody)
}

// handleReady handles readiness checks. Readiness is the same as liveness:
// the process has nothing to warm up.
func (s *Server) handleReady(c *gin.Context) {
	c.JSON(http.StatusOK, readyBody)
}
