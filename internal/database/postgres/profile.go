package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/getmentor/mentorlink-api/internal/models"
	apperrors "github.com/getmentor/mentorlink-api/pkg/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const profileColumns = `id, user_id, role, bio, skills, interests, avatar_url, created_at, updated_at`

// UpsertProfile creates the user's profile or patches the fields present in req.
// Omitted fields keep their stored value; lists are replaced whole.
func (c *Client) UpsertProfile(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	start := time.Now()
	operation := "upsertProfile"

	var skills, interests []string
	if req.Skills != nil {
		skills = nonNil(*req.Skills)
	}
	if req.Interests != nil {
		interests = nonNil(*req.Interests)
	}

	query := `
		INSERT INTO profiles (id, user_id, role, bio, skills, interests)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			role       = EXCLUDED.role,
			bio        = CASE WHEN $7::boolean THEN EXCLUDED.bio ELSE profiles.bio END,
			skills     = CASE WHEN $8::boolean THEN EXCLUDED.skills ELSE profiles.skills END,
			interests  = CASE WHEN $9::boolean THEN EXCLUDED.interests ELSE profiles.interests END,
			updated_at = NOW()
		RETURNING ` + profileColumns

	row := c.pool.QueryRow(ctx, query,
		uuid.NewString(),
		userID,
		string(req.Role),
		req.Bio,
		skills,
		interests,
		req.Bio != nil,
		req.Skills != nil,
		req.Interests != nil,
	)
	profile, err := scanProfile(row)

	observe(ctx, operation, start, err, zap.String("user_id", userID))

	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return profile, nil
}

// GetProfileByUserID returns the user's profile, or nil if they have none
func (c *Client) GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	start := time.Now()
	operation := "getProfileByUserID"

	row := c.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	profile, err := scanProfile(row)

	if isNoRows(err) {
		observe(ctx, operation, start, nil, zap.Bool("found", false))
		return nil, nil
	}
	observe(ctx, operation, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// UpdateProfileAvatar records the avatar URL on an existing profile
func (c *Client) UpdateProfileAvatar(ctx context.Context, userID, avatarURL string) error {
	start := time.Now()
	operation := "updateProfileAvatar"

	result, err := c.pool.Exec(ctx,
		`UPDATE profiles SET avatar_url = $1, updated_at = NOW() WHERE user_id = $2`,
		avatarURL, userID)

	observe(ctx, operation, start, err, zap.String("user_id", userID))

	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NotFoundError("profile")
	}
	return nil
}

// BrowseProfiles returns profiles holding targetRole or both, excluding the caller
func (c *Client) BrowseProfiles(ctx context.Context, callerID string, targetRole models.Role) ([]models.CandidateSummary, error) {
	start := time.Now()
	operation := "browseProfiles"

	query := `
		SELECT p.id, p.user_id, u.email, p.role, p.bio, p.skills, p.interests, p.avatar_url
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.role IN ($1, 'both')
		  AND p.user_id <> $2
	`

	rows, err := c.pool.Query(ctx, query, string(targetRole), callerID)
	if err != nil {
		observe(ctx, operation, start, err)
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	candidates := make([]models.CandidateSummary, 0)
	for rows.Next() {
		var cs models.CandidateSummary
		var role string
		if err := rows.Scan(&cs.ProfileID, &cs.UserID, &cs.Email, &role, &cs.Bio, &cs.Skills, &cs.Interests, &cs.AvatarURL); err != nil {
			observe(ctx, operation, start, err)
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		cs.Role = models.Role(role)
		candidates = append(candidates, cs)
	}
	if err := rows.Err(); err != nil {
		observe(ctx, operation, start, err)
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}

	observe(ctx, operation, start, nil,
		zap.String("target_role", string(targetRole)),
		zap.Int("count", len(candidates)))

	return candidates, nil
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	var role string
	err := row.Scan(&p.ID, &p.UserID, &role, &p.Bio, &p.Skills, &p.Interests, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Role = models.Role(role)
	return &p, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
