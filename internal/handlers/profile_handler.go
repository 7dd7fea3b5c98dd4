package handlers

import (
	"net/http"

	"github.com/getmentor/mentorlink-api/internal/middleware"
	"github.com/getmentor/mentorlink-api/internal/models"
	"github.com/getmentor/mentorlink-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ProfileHandler handles the caller's own profile
type ProfileHandler struct {
	service services.ProfileServiceInterface
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(service services.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

// UpsertProfile handles PUT /api/v1/profile
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	var req models.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.service.UpsertProfile(c.Request.Context(), middleware.CallerID(c), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to save profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetMyProfile handles GET /api/v1/profile
// Responds with null when the caller has no profile or is anonymous
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.service.GetMyProfile(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UploadPicture handles POST /api/v1/profile/picture
func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	var req models.UploadProfilePictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	imageURL, err := h.service.UploadPicture(c.Request.Context(), middleware.CallerID(c), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to upload picture")
		return
	}

	c.JSON(http.StatusOK, models.UploadProfilePictureResponse{
		Success:  true,
		ImageURL: imageURL,
	})
}
