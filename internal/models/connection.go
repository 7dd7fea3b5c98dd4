package models

import "time"

// Connection is an accepted mentor/mentee pair. Immutable once created.
type Connection struct {
	ID        string    `json:"id"`
	MentorID  string    `json:"mentorId"`
	MenteeID  string    `json:"menteeId"`
	RequestID string    `json:"requestId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ResolveMentorship decides who mentors whom when a request is accepted.
// Only the sender's role counts: a mentor or both sender mentors the recipient,
// anything else (mentee, or no profile at all) makes the recipient the mentor.
func ResolveMentorship(fromUserID, toUserID string, senderRole *Role) (mentorID, menteeID string) {
	if senderRole != nil && senderRole.CanMentor() {
		return fromUserID, toUserID
	}
	return toUserID, fromUserID
}

// MentorEntry is a connection seen from the mentee's side
type MentorEntry struct {
	ConnectionID string   `json:"connectionId"`
	UserID       string   `json:"userId"`
	Email        string   `json:"email"`
	Bio          *string  `json:"bio"`
	Skills       []string `json:"skills"`
}

// MenteeEntry is a connection seen from the mentor's side
type MenteeEntry struct {
	ConnectionID string   `json:"connectionId"`
	UserID       string   `json:"userId"`
	Email        string   `json:"email"`
	Bio          *string  `json:"bio"`
	Interests    []string `json:"interests"`
}

// ConnectionsView lists the caller's connections split by partner role
type ConnectionsView struct {
	Mentors []MentorEntry `json:"mentors"`
	Mentees []MenteeEntry `json:"mentees"`
}

// EmptyConnectionsView returns a view with non-nil empty lists
func EmptyConnectionsView() *ConnectionsView {
	return &ConnectionsView{
		Mentors: []MentorEntry{},
		Mentees: []MenteeEntry{},
	}
}
