package models

import "time"

// Role represents the role a user plays on the platform
type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
	RoleBoth   Role = "both"
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleMentor, RoleMentee, RoleBoth:
		return true
	default:
		return false
	}
}

// CanMentor returns true for roles that take the mentor side of a connection
func (r Role) CanMentor() bool {
	return r == RoleMentor || r == RoleBoth
}

// Profile is a user's public profile. Exactly one per user.
type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Role      Role      `json:"role"`
	Bio       *string   `json:"bio"`
	Skills    []string  `json:"skills"`
	Interests []string  `json:"interests"`
	AvatarURL *string   `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpsertProfileRequest creates or patches the caller's profile.
// Nil fields are left untouched on an existing profile and unset on a new one.
// Only the role is validated; payload size is bounded by the route's body limit.
type UpsertProfileRequest struct {
	Role      Role      `json:"role" binding:"required,oneof=mentor mentee both"`
	Bio       *string   `json:"bio"`
	Skills    *[]string `json:"skills"`
	Interests *[]string `json:"interests"`
}

// UploadProfilePictureRequest represents a profile picture upload request
type UploadProfilePictureRequest struct {
	Image       string `json:"image" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// UploadProfilePictureResponse represents the response after uploading a profile picture
type UploadProfilePictureResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl,omitempty"`
}
