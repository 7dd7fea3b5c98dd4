package models

import "time"

// RequestStatus represents the status of a connection request
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

// IsTerminal returns true if the status allows no further transitions
func (s RequestStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// DecisionStatus returns the status a pending request moves to for the given decision
func DecisionStatus(accept bool) RequestStatus {
	if accept {
		return StatusAccepted
	}
	return StatusRejected
}

// ConnectionRequest is a directed request from one user to another.
// At most one exists per ordered (FromUserID, ToUserID) pair.
type ConnectionRequest struct {
	ID          string        `json:"id"`
	FromUserID  string        `json:"fromUserId"`
	ToUserID    string        `json:"toUserId"`
	Status      RequestStatus `json:"status"`
	Message     *string       `json:"message,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	RespondedAt *time.Time    `json:"respondedAt,omitempty"`
}

// PendingRequestView is an incoming pending request with sender details for display
type PendingRequestView struct {
	RequestID  string    `json:"requestId"`
	FromUserID string    `json:"fromUserId"`
	FromEmail  string    `json:"fromEmail"`
	FromRole   *Role     `json:"fromRole"`
	FromBio    *string   `json:"fromBio"`
	Message    *string   `json:"message,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SendRequestPayload is the payload for sending a connection request
type SendRequestPayload struct {
	ToUserID string  `json:"toUserId" binding:"required,uuid"`
	Message  *string `json:"message"`
}

// SendRequestResponse is returned after a request is created
type SendRequestResponse struct {
	RequestID string `json:"requestId"`
}

// RespondPayload is the payload for accepting or rejecting a request
type RespondPayload struct {
	Accept *bool `json:"accept" binding:"required"`
}
