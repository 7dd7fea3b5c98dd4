package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getmentor/mentorlink-api/internal/middleware"
	"github.com/getmentor/mentorlink-api/internal/models"
	"github.com/getmentor/mentorlink-api/internal/services"
	apperrors "github.com/getmentor/mentorlink-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	aliceID   = "0b6f4a9e-4c1d-4a57-9d0e-3f8a1c2b7d11"
	bobID     = "7c2e9d14-52a8-4f3b-b6c1-9e0d8a4f2b33"
	requestID = "e4a1b2c3-d4e5-4f60-8172-839405a6b7c8"
	postID    = "1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newRouter builds an engine that identifies every request as callerID ("" for anonymous)
func newRouter(callerID string) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if callerID != "" {
			c.Request = c.Request.WithContext(middleware.WithIdentity(c.Request.Context(), callerID))
		}
		c.Next()
	})
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{apperrors.ErrUnauthenticated, http.StatusUnauthorized},
		{apperrors.NotFoundError("user"), http.StatusNotFound},
		{apperrors.ErrUnauthorized, http.StatusForbidden},
		{apperrors.ErrAlreadyExists, http.StatusConflict},
		{apperrors.ErrConflict, http.StatusConflict},
		{apperrors.InvalidInputError("field", "bad"), http.StatusBadRequest},
		{services.ErrStorageDisabled, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, statusForError(tt.err), tt.err.Error())
	}
}

func TestRespondServiceError_HidesInternalErrors(t *testing.T) {
	r := newRouter("")
	r.GET("/x", func(c *gin.Context) {
		respondServiceError(c, errors.New("pq: connection reset"), "Failed to do thing")
	})

	w := doJSON(r, http.MethodGet, "/x", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to do thing", decodeBody(t, w)["error"])
}

func TestHealthHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		r := newRouter("")
		r.GET("/api/healthcheck", NewHealthHandler(func(context.Context) error { return nil }).Healthcheck)

		w := doJSON(r, http.MethodGet, "/api/healthcheck", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", decodeBody(t, w)["status"])
		assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
	})

	t.Run("database down", func(t *testing.T) {
		r := newRouter("")
		r.GET("/api/healthcheck", NewHealthHandler(func(context.Context) error { return errors.New("refused") }).Healthcheck)

		w := doJSON(r, http.MethodGet, "/api/healthcheck", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unavailable", decodeBody(t, w)["status"])
	})
}

func TestAuthHandler_Register(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc)
	r := newRouter("")
	r.POST("/auth/register", h.Register)

	user := &models.User{ID: aliceID, Email: "alice@example.com", PasswordHash: "hash"}
	svc.On("Register", mock.Anything, &models.RegisterRequest{Email: "alice@example.com", Password: "password123"}).
		Return(user, "signed-token", nil)

	w := doJSON(r, http.MethodPost, "/auth/register", gin.H{"email": "alice@example.com", "password": "password123"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "hash")
	body := decodeBody(t, w)
	assert.Equal(t, "signed-token", body["token"])
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.SessionCookieName+"=signed-token")
	svc.AssertExpectations(t)
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc)
	r := newRouter("")
	r.POST("/auth/register", h.Register)

	w := doJSON(r, http.MethodPost, "/auth/register", gin.H{"email": "not-an-email", "password": "short"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Len(t, body["details"], 2)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc)
	r := newRouter("")
	r.POST("/auth/register", h.Register)

	svc.On("Register", mock.Anything, mock.Anything).Return(nil, "", apperrors.AlreadyExistsError("user"))

	w := doJSON(r, http.MethodPost, "/auth/register", gin.H{"email": "alice@example.com", "password": "password123"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc)
	r := newRouter("")
	r.POST("/auth/login", h.Login)

	svc.On("Login", mock.Anything, mock.Anything).Return(nil, "", apperrors.ErrUnauthenticated)

	w := doJSON(r, http.MethodPost, "/auth/login", gin.H{"email": "alice@example.com", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestAuthHandler_LogoutAndSession(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc)

	t.Run("logout clears cookie", func(t *testing.T) {
		r := newRouter(aliceID)
		r.POST("/auth/logout", h.Logout)

		w := doJSON(r, http.MethodPost, "/auth/logout", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeBody(t, w)["success"])
		assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
	})

	t.Run("session returns current user", func(t *testing.T) {
		r := newRouter(aliceID)
		r.GET("/auth/session", h.GetSession)
		svc.On("CurrentUser", mock.Anything, aliceID).Return(&models.User{ID: aliceID, Email: "alice@example.com"}, nil).Once()

		w := doJSON(r, http.MethodGet, "/auth/session", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		user := decodeBody(t, w)["user"].(map[string]any)
		assert.Equal(t, aliceID, user["id"])
	})

	t.Run("anonymous session", func(t *testing.T) {
		r := newRouter("")
		r.GET("/auth/session", h.GetSession)
		svc.On("CurrentUser", mock.Anything, "").Return(nil, apperrors.ErrUnauthenticated).Once()

		w := doJSON(r, http.MethodGet, "/auth/session", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestProfileHandler_UpsertProfile(t *testing.T) {
	svc := new(MockProfileService)
	h := NewProfileHandler(svc)
	r := newRouter(aliceID)
	r.PUT("/profile", h.UpsertProfile)

	bio := "Go developer"
	profile := &models.Profile{ID: "p1", UserID: aliceID, Role: models.RoleMentor, Bio: &bio}
	svc.On("UpsertProfile", mock.Anything, aliceID, mock.MatchedBy(func(req *models.UpsertProfileRequest) bool {
		return req.Role == models.RoleMentor && req.Bio != nil && *req.Bio == bio && req.Skills == nil
	})).Return(profile, nil)

	w := doJSON(r, http.MethodPut, "/profile", gin.H{"role": "mentor", "bio": bio})

	assert.Equal(t, http.StatusOK, w.Code)
	got := decodeBody(t, w)
	assert.Equal(t, "mentor", got["role"])
	assert.Equal(t, aliceID, got["userId"])
	svc.AssertExpectations(t)
}

func TestProfileHandler_UpsertProfile_OnlyRoleIsValidated(t *testing.T) {
	skills := make([]string, 51)
	for i := range skills {
		skills[i] = fmt.Sprintf("skill-%d-%s", i, strings.Repeat("x", 120))
	}
	bio := strings.Repeat("b", 5001)
	message := strings.Repeat("m", 3000)

	svc := new(MockProfileService)
	r := newRouter(aliceID)
	r.PUT("/profile", NewProfileHandler(svc).UpsertProfile)
	svc.On("UpsertProfile", mock.Anything, aliceID, mock.MatchedBy(func(req *models.UpsertProfileRequest) bool {
		return req.Skills != nil && len(*req.Skills) == 51 && req.Bio != nil && len(*req.Bio) == 5001
	})).Return(&models.Profile{UserID: aliceID, Role: models.RoleMentor, Skills: skills}, nil)

	w := doJSON(r, http.MethodPut, "/profile", gin.H{"role": "mentor", "bio": bio, "skills": skills, "interests": skills})

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)

	requests := new(MockConnectionRequestService)
	r = newRouter(aliceID)
	r.POST("/requests", NewConnectionRequestHandler(requests).SendRequest)
	requests.On("SendRequest", mock.Anything, aliceID, mock.Anything).Return(requestID, nil)

	w = doJSON(r, http.MethodPost, "/requests", gin.H{"toUserId": bobID, "message": message})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestProfileHandler_UpsertProfile_InvalidRole(t *testing.T) {
	svc := new(MockProfileService)
	h := NewProfileHandler(svc)
	r := newRouter(aliceID)
	r.PUT("/profile", h.UpsertProfile)

	w := doJSON(r, http.MethodPut, "/profile", gin.H{"role": "coach"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be one of")
	svc.AssertNotCalled(t, "UpsertProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileHandler_UpsertProfile_Anonymous(t *testing.T) {
	svc := new(MockProfileService)
	h := NewProfileHandler(svc)
	r := newRouter("")
	r.PUT("/profile", h.UpsertProfile)

	svc.On("UpsertProfile", mock.Anything, "", mock.Anything).Return(nil, apperrors.ErrUnauthenticated)

	w := doJSON(r, http.MethodPut, "/profile", gin.H{"role": "mentee"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileHandler_GetMyProfile_None(t *testing.T) {
	svc := new(MockProfileService)
	h := NewProfileHandler(svc)
	r := newRouter("")
	r.GET("/profile", h.GetMyProfile)

	svc.On("GetMyProfile", mock.Anything, "").Return(nil, nil)

	w := doJSON(r, http.MethodGet, "/profile", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `null`, w.Body.String())
}

func TestProfileHandler_UploadPicture(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockProfileService)
		r := newRouter(aliceID)
		r.POST("/profile/picture", NewProfileHandler(svc).UploadPicture)
		svc.On("UploadPicture", mock.Anything, aliceID, mock.Anything).Return("https://cdn.example/p.png", nil)

		w := doJSON(r, http.MethodPost, "/profile/picture", gin.H{"image": "aGVsbG8=", "contentType": "image/png"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://cdn.example/p.png", decodeBody(t, w)["imageUrl"])
	})

	t.Run("storage disabled", func(t *testing.T) {
		svc := new(MockProfileService)
		r := newRouter(aliceID)
		r.POST("/profile/picture", NewProfileHandler(svc).UploadPicture)
		svc.On("UploadPicture", mock.Anything, aliceID, mock.Anything).Return("", services.ErrStorageDisabled)

		w := doJSON(r, http.MethodPost, "/profile/picture", gin.H{"image": "aGVsbG8=", "contentType": "image/png"})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestBrowseHandler_BrowseUsers(t *testing.T) {
	svc := new(MockBrowseService)
	h := NewBrowseHandler(svc)
	r := newRouter(aliceID)
	r.GET("/users", h.BrowseUsers)

	candidates := []models.CandidateSummary{{UserID: bobID, Email: "bob@example.com", Role: models.RoleMentee}}
	svc.On("BrowseUsers", mock.Anything, aliceID, "mentees").Return(candidates, nil)
	svc.On("BrowseUsers", mock.Anything, aliceID, "friends").Return(nil, apperrors.InvalidInputError("lookingFor", "must be mentors or mentees"))

	w := doJSON(r, http.MethodGet, "/users?lookingFor=mentees", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var got []models.CandidateSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, candidates, got)

	w = doJSON(r, http.MethodGet, "/users?lookingFor=friends", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConnectionRequestHandler_SendRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		serviceErr error
		wantStatus int
	}{
		{"created", gin.H{"toUserId": bobID, "message": "hi"}, nil, http.StatusCreated},
		{"duplicate", gin.H{"toUserId": bobID}, apperrors.AlreadyExistsError("connection request"), http.StatusConflict},
		{"unknown recipient", gin.H{"toUserId": bobID}, apperrors.NotFoundError("user"), http.StatusNotFound},
		{"self", gin.H{"toUserId": aliceID}, apperrors.InvalidInputError("toUserId", "cannot send a request to yourself"), http.StatusBadRequest},
		{"malformed id", gin.H{"toUserId": "bob"}, nil, http.StatusBadRequest},
		{"malformed json", `{"toUserId":`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockConnectionRequestService)
			r := newRouter(aliceID)
			r.POST("/requests", NewConnectionRequestHandler(svc).SendRequest)
			svc.On("SendRequest", mock.Anything, aliceID, mock.Anything).Return(requestID, tt.serviceErr)

			w := doJSON(r, http.MethodPost, "/requests", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, requestID, decodeBody(t, w)["requestId"])
			}
		})
	}
}

func TestConnectionRequestHandler_GetPendingRequests(t *testing.T) {
	svc := new(MockConnectionRequestService)
	r := newRouter("")
	r.GET("/requests/pending", NewConnectionRequestHandler(svc).GetPendingRequests)
	svc.On("GetPendingRequests", mock.Anything, "").Return([]models.PendingRequestView{}, nil)

	w := doJSON(r, http.MethodGet, "/requests/pending", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestConnectionRequestHandler_RespondToRequest(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		serviceErr error
		wantStatus int
		wantCall   bool
	}{
		{"accept", "/requests/" + requestID + "/respond", `{"accept":true}`, nil, http.StatusOK, true},
		{"reject", "/requests/" + requestID + "/respond", `{"accept":false}`, nil, http.StatusOK, true},
		{"missing decision", "/requests/" + requestID + "/respond", `{}`, nil, http.StatusBadRequest, false},
		{"malformed id", "/requests/abc/respond", `{"accept":true}`, nil, http.StatusNotFound, false},
		{"not recipient", "/requests/" + requestID + "/respond", `{"accept":true}`, apperrors.ErrUnauthorized, http.StatusForbidden, true},
		{"already decided", "/requests/" + requestID + "/respond", `{"accept":true}`, apperrors.ErrConflict, http.StatusConflict, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockConnectionRequestService)
			r := newRouter(bobID)
			r.POST("/requests/:id/respond", NewConnectionRequestHandler(svc).RespondToRequest)
			accept := strings.Contains(tt.body, "true")
			svc.On("RespondToRequest", mock.Anything, bobID, requestID, accept).Return(tt.serviceErr)

			w := doJSON(r, http.MethodPost, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCall {
				svc.AssertCalled(t, "RespondToRequest", mock.Anything, bobID, requestID, accept)
			} else {
				svc.AssertNotCalled(t, "RespondToRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, string(models.DecisionStatus(accept)), decodeBody(t, w)["status"])
			}
		})
	}
}

func TestConnectionHandler_GetMyConnections(t *testing.T) {
	svc := new(MockConnectionService)
	r := newRouter("")
	r.GET("/connections", NewConnectionHandler(svc).GetMyConnections)
	svc.On("GetMyConnections", mock.Anything, "").Return(models.EmptyConnectionsView(), nil)

	w := doJSON(r, http.MethodGet, "/connections", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mentors":[],"mentees":[]}`, w.Body.String())
}

func TestPostHandler(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		svc := new(MockPostService)
		r := newRouter(aliceID)
		r.POST("/posts", NewPostHandler(svc).CreatePost)
		post := &models.Post{ID: postID, AuthorID: aliceID, Title: "Hello", Body: "World"}
		svc.On("CreatePost", mock.Anything, aliceID, &models.CreatePostRequest{Title: "Hello", Body: "World"}).Return(post, nil)

		w := doJSON(r, http.MethodPost, "/posts", gin.H{"title": "Hello", "body": "World"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, postID, decodeBody(t, w)["id"])
	})

	t.Run("create requires title", func(t *testing.T) {
		svc := new(MockPostService)
		r := newRouter(aliceID)
		r.POST("/posts", NewPostHandler(svc).CreatePost)

		w := doJSON(r, http.MethodPost, "/posts", gin.H{"body": "World"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("feed", func(t *testing.T) {
		svc := new(MockPostService)
		r := newRouter(aliceID)
		r.GET("/posts", NewPostHandler(svc).ListFeed)
		svc.On("ListFeed", mock.Anything, aliceID).Return([]models.Post{{ID: postID}}, nil)

		w := doJSON(r, http.MethodGet, "/posts", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), postID)
	})

	t.Run("comments on hidden post", func(t *testing.T) {
		svc := new(MockPostService)
		r := newRouter(bobID)
		r.GET("/posts/:id/comments", NewPostHandler(svc).ListComments)
		svc.On("ListComments", mock.Anything, bobID, postID).Return(nil, apperrors.ErrUnauthorized)

		w := doJSON(r, http.MethodGet, "/posts/"+postID+"/comments", nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("comment on malformed id", func(t *testing.T) {
		svc := new(MockPostService)
		r := newRouter(bobID)
		r.POST("/posts/:id/comments", NewPostHandler(svc).AddComment)

		w := doJSON(r, http.MethodPost, "/posts/nope/comments", gin.H{"body": "hi"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("add comment", func(t *testing.T) {
		svc := new(MockPostService)
		r := newRouter(bobID)
		r.POST("/posts/:id/comments", NewPostHandler(svc).AddComment)
		svc.On("AddComment", mock.Anything, bobID, postID, &models.CreateCommentRequest{Body: "hi"}).
			Return(&models.Comment{ID: "c1", PostID: postID, AuthorID: bobID, Body: "hi"}, nil)

		w := doJSON(r, http.MethodPost, "/posts/"+postID+"/comments", gin.H{"body": "hi"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "hi", decodeBody(t, w)["body"])
	})
}

func TestRespondBindError_BodyTooLarge(t *testing.T) {
	svc := new(MockConnectionRequestService)
	r := newRouter(aliceID)
	r.POST("/requests", middleware.BodySizeLimitMiddleware(16), NewConnectionRequestHandler(svc).SendRequest)

	req := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(`{"toUserId":"`+bobID+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	svc.AssertNotCalled(t, "SendRequest", mock.Anything, mock.Anything, mock.Anything)
}
