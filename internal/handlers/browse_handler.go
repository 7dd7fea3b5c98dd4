package handlers

import (
	"net/http"

	"github.com/getmentor/mentorlink-api/internal/middleware"
	"github.com/getmentor/mentorlink-api/internal/services"
	"github.com/gin-gonic/gin"
)

// BrowseHandler lists candidate mentors or mentees
type BrowseHandler struct {
	service services.BrowseServiceInterface
}

// NewBrowseHandler creates a new BrowseHandler
func NewBrowseHandler(service services.BrowseServiceInterface) *BrowseHandler {
	return &BrowseHandler{
		service: service,
	}
}

// BrowseUsers handles GET /api/v1/users?lookingFor=mentors|mentees
func (h *BrowseHandler) BrowseUsers(c *gin.Context) {
	candidates, err := h.service.BrowseUsers(c.Request.Context(), middleware.CallerID(c), c.Query("lookingFor"))
	if err != nil {
		respondServiceError(c, err, "Failed to browse users")
		return
	}

	c.JSON(http.StatusOK, candidates)
}
