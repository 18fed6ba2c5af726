package postgres

import (
	"context"
	"fmt"

	"wayfinder/business/suggestion"
	"wayfinder/domain"

	"gorm.io/gorm"
)

// SuggestionEventRepository persists the post-commit history events.
type SuggestionEventRepository struct {
	DB *gorm.DB
}

var _ suggestion.EventRecorder = (*SuggestionEventRepository)(nil)

func NewSuggestionEventRepository(db *gorm.DB) *SuggestionEventRepository {
	return &SuggestionEventRepository{DB: db}
}

func (r *SuggestionEventRepository) SaveEvent(ctx context.Context, event domain.SuggestionEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to save suggestion event: %w", err)
	}

	return nil
}
