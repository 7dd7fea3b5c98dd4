package services

import (
	"context"
	"fmt"

	"github.com/getmentor/mentorlink-api/internal/models"
	"github.com/getmentor/mentorlink-api/internal/repository"
	apperrors "github.com/getmentor/mentorlink-api/pkg/errors"
	"github.com/getmentor/mentorlink-api/pkg/logger"
	"github.com/getmentor/mentorlink-api/pkg/metrics"
	"github.com/getmentor/mentorlink-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ConnectionRequestService runs the request lifecycle: send, list incoming, respond
type ConnectionRequestService struct {
	requestRepo repository.ConnectionRequestRepositoryInterface
	userRepo    repository.UserRepositoryInterface
}

// NewConnectionRequestService creates a new ConnectionRequestService
func NewConnectionRequestService(
	requestRepo repository.ConnectionRequestRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
) *ConnectionRequestService {
	return &ConnectionRequestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

// SendRequest creates a pending request from the caller to payload.ToUserID.
// Only one request may ever exist per ordered pair; the reverse pair is independent.
func (s *ConnectionRequestService) SendRequest(ctx context.Context, callerID string, payload *models.SendRequestPayload) (requestID string, err error) {
	ctx, span := tracing.StartSpan(ctx, "ConnectionRequestService.SendRequest",
		attribute.String("from_user_id", callerID),
		attribute.String("to_user_id", payload.ToUserID))
	defer func() { tracing.EndSpan(span, err) }()

	if callerID == "" {
		return "", apperrors.ErrUnauthenticated
	}
	if payload.ToUserID == callerID {
		metrics.ConnectionRequestsSent.WithLabelValues("invalid").Inc()
		return "", apperrors.InvalidInputError("toUserId", "cannot send a request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, payload.ToUserID); err != nil {
		metrics.ConnectionRequestsSent.WithLabelValues("invalid").Inc()
		return "", fmt.Errorf("recipient: %w", err)
	}

	req, err := s.requestRepo.Create(ctx, callerID, payload.ToUserID, payload.Message)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAlreadyExists) {
			metrics.ConnectionRequestsSent.WithLabelValues("duplicate").Inc()
			return "", err
		}
		metrics.ConnectionRequestsSent.WithLabelValues("error").Inc()
		logger.Error("Failed to create connection request",
			zap.String("from_user_id", callerID),
			zap.String("to_user_id", payload.ToUserID),
			zap.Error(err))
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	metrics.ConnectionRequestsSent.WithLabelValues("success").Inc()
	logger.Info("Connection request sent",
		zap.String("request_id", req.ID),
		zap.String("from_user_id", callerID),
		zap.String("to_user_id", payload.ToUserID))

	return req.ID, nil
}

// GetPendingRequests lists pending requests addressed to the caller, oldest first
func (s *ConnectionRequestService) GetPendingRequests(ctx context.Context, callerID string) ([]models.PendingRequestView, error) {
	if callerID == "" {
		return []models.PendingRequestView{}, nil
	}

	views, err := s.requestRepo.ListPendingTo(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return views, nil
}

// RespondToRequest accepts or rejects a pending request addressed to the caller.
// Accepting records the connection in the same transaction as the status change.
func (s *ConnectionRequestService) RespondToRequest(ctx context.Context, callerID, requestID string, accept bool) (err error) {
	decision := string(models.DecisionStatus(accept))

	ctx, span := tracing.StartSpan(ctx, "ConnectionRequestService.RespondToRequest",
		attribute.String("request_id", requestID),
		attribute.String("decision", decision))
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ConnectionRequestsResponded.WithLabelValues(decision, respondStatus(err)).Inc()
	}()

	if callerID == "" {
		return apperrors.ErrUnauthenticated
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if req.ToUserID != callerID {
		logger.Warn("Respond attempted by non-recipient",
			zap.String("request_id", requestID),
			zap.String("caller_id", callerID))
		return apperrors.UnauthorizedError("only the recipient may respond to a request")
	}

	if req.Status.IsTerminal() {
		return apperrors.ConflictError(fmt.Sprintf("request already %s", req.Status))
	}

	if !accept {
		if err := s.requestRepo.Reject(ctx, requestID); err != nil {
			return err
		}
		logger.Info("Connection request rejected", zap.String("request_id", requestID))
		return nil
	}

	conn, err := s.requestRepo.Accept(ctx, requestID)
	if err != nil {
		return err
	}

	metrics.ConnectionsCreated.Inc()
	logger.Info("Connection request accepted",
		zap.String("request_id", requestID),
		zap.String("connection_id", conn.ID),
		zap.String("mentor_id", conn.MentorID),
		zap.String("mentee_id", conn.MenteeID))

	return nil
}

func respondStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.Is(err, apperrors.ErrConflict):
		return "conflict"
	case apperrors.Is(err, apperrors.ErrNotFound), apperrors.Is(err, apperrors.ErrUnauthorized), apperrors.Is(err, apperrors.ErrUnauthenticated):
		return "rejected"
	default:
		return "error"
	}
}
