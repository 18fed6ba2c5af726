package postgres

import (
	"context"
	"fmt"
	"time"

	"wayfinder/business/suggestion"
	"wayfinder/domain"

	"gorm.io/gorm"
)

// ExclusionRepository serves the user's exclusion window: permanent blocks,
// timed cool-downs, and place ids from their most recent suggestion events.
type ExclusionRepository struct {
	DB *gorm.DB
}

var _ suggestion.ExclusionStore = (*ExclusionRepository)(nil)

func NewExclusionRepository(db *gorm.DB) *ExclusionRepository {
	return &ExclusionRepository{DB: db}
}

func (r *ExclusionRepository) GetActiveExclusions(ctx context.Context, userID string) (map[string]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.PlaceExclusion
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("permanent = ? OR expires_at > ?", true, time.Now()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query place_exclusions: %w", err)
	}

	out := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		out[row.PlaceID] = struct{}{}
	}

	return out, nil
}

func (r *ExclusionRepository) GetRecentSuggestions(ctx context.Context, userID string, n int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if n <= 0 {
		return nil, nil
	}

	var events []domain.SuggestionEvent
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(n).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestion_events: %w", err)
	}

	seen := map[string]struct{}{}
	var out []string
	for _, ev := range events {
		for _, id := range ev.PlaceIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
			if len(out) >= n {
				return out, nil
			}
		}
	}

	return out, nil
}

// AddExclusion records a user block. Permanent when expiresAt is nil.
func (r *ExclusionRepository) AddExclusion(ctx context.Context, userID, placeID string, expiresAt *time.Time) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	row := domain.PlaceExclusion{
		UserID:    userID,
		PlaceID:   placeID,
		Permanent: expiresAt == nil,
		ExpiresAt: expiresAt,
	}

	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save place exclusion: %w", err)
	}

	return nil
}
