package handlers

import (
	"net/http"

	"github.com/getmentor/mentorlink-api/internal/middleware"
	"github.com/getmentor/mentorlink-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ConnectionHandler lists the caller's connections
type ConnectionHandler struct {
	service services.ConnectionServiceInterface
}

// NewConnectionHandler creates a new ConnectionHandler
func NewConnectionHandler(service services.ConnectionServiceInterface) *ConnectionHandler {
	return &ConnectionHandler{
		service: service,
	}
}

// GetMyConnections handles GET /api/v1/connections
func (h *ConnectionHandler) GetMyConnections(c *gin.Context) {
	view, err := h.service.GetMyConnections(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch connections")
		return
	}

	c.JSON(http.StatusOK, view)
}
