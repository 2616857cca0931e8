package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"
)

// Fixed response bodies
const (
	HealthMessage = "Service is healthy and running :D"
	HomeMessage   = "Home"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, HealthMessage)
}

// handleHome handles the home page
func (s *Server) handleHome(c *gin.Context) {
	c.String(http.StatusOK, HomeMessage)
}

// handleMetrics renders the recorder's exposition
func (s *Server) handleMetrics(c *gin.Context) {
	body, err := s.metrics.Render()
	if err != nil {
		s.logger.Error("failed to render metrics", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to render metrics")
		return
	}

	c.Data(http.StatusOK, string(expfmt.FmtText), body)
}
