package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/getmentor/mentorlink-api/config"
	"github.com/getmentor/mentorlink-api/internal/models"
	"github.com/getmentor/mentorlink-api/internal/repository"
	apperrors "github.com/getmentor/mentorlink-api/pkg/errors"
	"github.com/getmentor/mentorlink-api/pkg/jwt"
	"github.com/getmentor/mentorlink-api/pkg/logger"
	"github.com/getmentor/mentorlink-api/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthenticated)

// AuthService handles password accounts and session tokens
type AuthService struct {
	userRepo     repository.UserRepositoryInterface
	session      config.SessionConfig
	tokenManager *jwt.TokenManager
	hashCost     int
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepositoryInterface, session config.SessionConfig) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		session:      session,
		tokenManager: jwt.NewTokenManager(session.JWTSecret, session.JWTIssuer, session.SessionTTLHours),
		hashCost:     bcrypt.DefaultCost,
	}
}

// Register creates an account and returns it with a session token
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error) {
	email := normalizeEmail(req.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("register", "error").Inc()
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, email, string(hash))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAlreadyExists) {
			metrics.AuthAttempts.WithLabelValues("register", "duplicate").Inc()
			return nil, "", err
		}
		metrics.AuthAttempts.WithLabelValues("register", "error").Inc()
		logger.Error("Failed to create user", zap.Error(err))
		return nil, "", fmt.Errorf("failed to register: %w", err)
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("register", "error").Inc()
		return nil, "", err
	}

	metrics.AuthAttempts.WithLabelValues("register", "success").Inc()
	logger.Info("User registered", zap.String("user_id", user.ID))

	return user, token, nil
}

// Login verifies the password and returns the user with a fresh session token
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			metrics.AuthAttempts.WithLabelValues("login", "invalid_credentials").Inc()
			return nil, "", errInvalidCredentials
		}
		metrics.AuthAttempts.WithLabelValues("login", "error").Inc()
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		metrics.AuthAttempts.WithLabelValues("login", "invalid_credentials").Inc()
		logger.Warn("Failed login attempt", zap.String("user_id", user.ID))
		return nil, "", errInvalidCredentials
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("login", "error").Inc()
		return nil, "", err
	}

	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()
	return user, token, nil
}

// CurrentUser resolves the caller's account
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.userRepo.GetByID(ctx, userID)
}

// GetSessionTTL returns the session lifetime in seconds
func (s *AuthService) GetSessionTTL() int {
	return s.session.SessionTTLHours * 3600
}

// GetCookieDomain returns the session cookie domain
func (s *AuthService) GetCookieDomain() string {
	return s.session.CookieDomain
}

// GetCookieSecure returns whether the session cookie is Secure
func (s *AuthService) GetCookieSecure() bool {
	return s.session.CookieSecure
}

// GetTokenManager returns the session token manager
func (s *AuthService) GetTokenManager() *jwt.TokenManager {
	return s.tokenManager
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
