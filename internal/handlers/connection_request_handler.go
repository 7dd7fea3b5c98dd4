package handlers

import (
	"net/http"

	"github.com/getmentor/mentorlink-api/internal/middleware"
	"github.com/getmentor/mentorlink-api/internal/models"
	"github.com/getmentor/mentorlink-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ConnectionRequestHandler handles sending and answering connection requests
type ConnectionRequestHandler struct {
	service services.ConnectionRequestServiceInterface
}

// NewConnectionRequestHandler creates a new ConnectionRequestHandler
func NewConnectionRequestHandler(service services.ConnectionRequestServiceInterface) *ConnectionRequestHandler {
	return &ConnectionRequestHandler{
		service: service,
	}
}

// SendRequest handles POST /api/v1/requests
func (h *ConnectionRequestHandler) SendRequest(c *gin.Context) {
	var req models.SendRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	requestID, err := h.service.SendRequest(c.Request.Context(), middleware.CallerID(c), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to send request")
		return
	}

	c.JSON(http.StatusCreated, models.SendRequestResponse{RequestID: requestID})
}

// GetPendingRequests handles GET /api/v1/requests/pending
func (h *ConnectionRequestHandler) GetPendingRequests(c *gin.Context) {
	views, err := h.service.GetPendingRequests(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch requests")
		return
	}

	c.JSON(http.StatusOK, views)
}

// RespondToRequest handles POST /api/v1/requests/:id/respond
func (h *ConnectionRequestHandler) RespondToRequest(c *gin.Context) {
	requestID, ok := pathID(c, "id", "connection request")
	if !ok {
		return
	}

	var req models.RespondPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.service.RespondToRequest(c.Request.Context(), middleware.CallerID(c), requestID, *req.Accept); err != nil {
		respondServiceError(c, err, "Failed to respond to request")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  models.DecisionStatus(*req.Accept),
	})
}
