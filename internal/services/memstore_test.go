package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/getmentor/mentorlink-api/internal/models"
	apperrors "github.com/getmentor/mentorlink-api/pkg/errors"
)

// memStore is an in-memory stand-in for the database that keeps the same
// uniqueness and pending-only guarantees as the schema.
type memStore struct {
	mu          sync.Mutex
	seq         int
	users       map[string]*models.User
	profiles    map[string]*models.Profile // by user id
	requests    map[string]*models.ConnectionRequest
	pairs       map[[2]string]string // (from, to) -> request id
	connections []models.Connection
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*models.User{},
		profiles: map[string]*models.Profile{},
		requests: map[string]*models.ConnectionRequest{},
		pairs:    map[[2]string]string{},
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *memStore) addUser(id, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = &models.User{ID: id, Email: email, CreatedAt: time.Now()}
}

func (s *memStore) connectionsForRequest(requestID string) []models.Connection {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Connection
	for _, c := range s.connections {
		if c.RequestID == requestID {
			out = append(out, c)
		}
	}
	return out
}

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, email, passwordHash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return nil, apperrors.AlreadyExistsError("user with this email")
		}
	}
	user := &models.User{ID: r.nextID("user"), Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	r.users[user.ID] = user
	return user, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFoundError("user")
}

func (r memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NotFoundError("user")
}

type memProfiles struct{ *memStore }

func (r memProfiles) Upsert(_ context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		p = &models.Profile{ID: r.nextID("profile"), UserID: userID, CreatedAt: time.Now()}
		r.profiles[userID] = p
	}
	p.Role = req.Role
	if req.Bio != nil {
		p.Bio = req.Bio
	}
	if req.Skills != nil {
		p.Skills = append([]string{}, *req.Skills...)
	}
	if req.Interests != nil {
		p.Interests = append([]string{}, *req.Interests...)
	}
	p.UpdatedAt = time.Now()

	copied := *p
	return &copied, nil
}

func (r memProfiles) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r memProfiles) UpdateAvatar(_ context.Context, userID, avatarURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return apperrors.NotFoundError("profile")
	}
	p.AvatarURL = &avatarURL
	return nil
}

func (r memProfiles) Browse(_ context.Context, callerID string, targetRole models.Role) ([]models.CandidateSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.CandidateSummary{}
	for userID, p := range r.profiles {
		if userID == callerID || (p.Role != targetRole && p.Role != models.RoleBoth) {
			continue
		}
		out = append(out, models.CandidateSummary{
			ProfileID: p.ID,
			UserID:    userID,
			Email:     r.users[userID].Email,
			Role:      p.Role,
			Bio:       p.Bio,
			Skills:    p.Skills,
			Interests: p.Interests,
		})
	}
	return out, nil
}

type memRequests struct{ *memStore }

func (r memRequests) Create(_ context.Context, fromUserID, toUserID string, message *string) (*models.ConnectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]string{fromUserID, toUserID}
	if _, exists := r.pairs[key]; exists {
		return nil, apperrors.AlreadyExistsError("connection request")
	}
	req := &models.ConnectionRequest{
		ID:         r.nextID("request"),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Status:     models.StatusPending,
		Message:    message,
		CreatedAt:  time.Now(),
	}
	r.requests[req.ID] = req
	r.pairs[key] = req.ID
	copied := *req
	return &copied, nil
}

func (r memRequests) GetByID(_ context.Context, id string) (*models.ConnectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, apperrors.NotFoundError("connection request")
	}
	copied := *req
	return &copied, nil
}

func (r memRequests) ListPendingTo(_ context.Context, userID string) ([]models.PendingRequestView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.PendingRequestView{}
	for _, req := range r.requests {
		if req.ToUserID != userID || req.Status != models.StatusPending {
			continue
		}
		view := models.PendingRequestView{
			RequestID:  req.ID,
			FromUserID: req.FromUserID,
			FromEmail:  r.users[req.FromUserID].Email,
			Message:    req.Message,
			CreatedAt:  req.CreatedAt,
		}
		if p, ok := r.profiles[req.FromUserID]; ok {
			role := p.Role
			view.FromRole = &role
			view.FromBio = p.Bio
		}
		out = append(out, view)
	}
	return out, nil
}

func (r memRequests) resolve(id string, status models.RequestStatus) (*models.ConnectionRequest, error) {
	req, ok := r.requests[id]
	if !ok || req.Status != models.StatusPending {
		return nil, apperrors.ConflictError("connection request already resolved")
	}
	now := time.Now()
	req.Status = status
	req.RespondedAt = &now
	return req, nil
}

func (r memRequests) Accept(_ context.Context, requestID string) (*models.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, err := r.resolve(requestID, models.StatusAccepted)
	if err != nil {
		return nil, err
	}

	var senderRole *models.Role
	if p, ok := r.profiles[req.FromUserID]; ok {
		role := p.Role
		senderRole = &role
	}
	mentorID, menteeID := models.ResolveMentorship(req.FromUserID, req.ToUserID, senderRole)

	conn := models.Connection{
		ID:        r.nextID("connection"),
		MentorID:  mentorID,
		MenteeID:  menteeID,
		RequestID: requestID,
		CreatedAt: time.Now(),
	}
	r.connections = append(r.connections, conn)
	return &conn, nil
}

func (r memRequests) Reject(_ context.Context, requestID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.resolve(requestID, models.StatusRejected)
	return err
}

type memConnections struct{ *memStore }

func (r memConnections) ListForUser(_ context.Context, userID string) (*models.ConnectionsView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	view := models.EmptyConnectionsView()
	for _, c := range r.connections {
		switch userID {
		case c.MenteeID:
			entry := models.MentorEntry{ConnectionID: c.ID, UserID: c.MentorID, Email: r.users[c.MentorID].Email}
			if p, ok := r.profiles[c.MentorID]; ok {
				entry.Bio, entry.Skills = p.Bio, p.Skills
			}
			view.Mentors = append(view.Mentors, entry)
		case c.MentorID:
			entry := models.MenteeEntry{ConnectionID: c.ID, UserID: c.MenteeID, Email: r.users[c.MenteeID].Email}
			if p, ok := r.profiles[c.MenteeID]; ok {
				entry.Bio, entry.Interests = p.Bio, p.Interests
			}
			view.Mentees = append(view.Mentees, entry)
		}
	}
	return view, nil
}

func (r memConnections) AreConnected(_ context.Context, userA, userB string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.connections {
		if (c.MentorID == userA && c.MenteeID == userB) || (c.MentorID == userB && c.MenteeID == userA) {
			return true, nil
		}
	}
	return false, nil
}
