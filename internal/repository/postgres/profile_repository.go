package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wayfinder/business/suggestion"
	"wayfinder/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tasteProfileRow struct {
	UserID           string    `gorm:"column:user_id;primaryKey"`
	Food             float64   `gorm:"column:food"`
	Culture          float64   `gorm:"column:culture"`
	Nightlife        float64   `gorm:"column:nightlife"`
	Outdoors         float64   `gorm:"column:outdoors"`
	Shopping         float64   `gorm:"column:shopping"`
	Wellness         float64   `gorm:"column:wellness"`
	NoveltyTolerance float64   `gorm:"column:novelty_tolerance"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (tasteProfileRow) TableName() string {
	return "taste_profiles"
}

type implicitProfileRow struct {
	UserID       string    `gorm:"column:user_id;primaryKey"`
	AffinityJSON []byte    `gorm:"column:affinity_json"`
	VisitsJSON   []byte    `gorm:"column:visits_json"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (implicitProfileRow) TableName() string {
	return "implicit_profiles"
}

// ProfileRepository stores taste profiles (one column per dimension, so the
// schema is as closed as the domain type) and reads learned implicit
// profiles. Implicit rows are written by the offline learner, never here.
type ProfileRepository struct {
	DB *gorm.DB
}

var _ suggestion.ProfileStore = (*ProfileRepository)(nil)

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) GetTasteProfile(ctx context.Context, userID string) (*domain.TasteProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row tasteProfileRow
	err := r.DB.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query taste_profiles: %w", err)
	}

	return &domain.TasteProfile{
		UserID:           row.UserID,
		Food:             row.Food,
		Culture:          row.Culture,
		Nightlife:        row.Nightlife,
		Outdoors:         row.Outdoors,
		Shopping:         row.Shopping,
		Wellness:         row.Wellness,
		NoveltyTolerance: row.NoveltyTolerance,
		UpdatedAt:        row.UpdatedAt,
	}, nil
}

func (r *ProfileRepository) UpsertTasteProfile(ctx context.Context, profile domain.TasteProfile) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	row := tasteProfileRow{
		UserID:           profile.UserID,
		Food:             profile.Food,
		Culture:          profile.Culture,
		Nightlife:        profile.Nightlife,
		Outdoors:         profile.Outdoors,
		Shopping:         profile.Shopping,
		Wellness:         profile.Wellness,
		NoveltyTolerance: profile.NoveltyTolerance,
	}

	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"food", "culture", "nightlife", "outdoors", "shopping", "wellness",
				"novelty_tolerance", "updated_at",
			}),
		}).
		Create(&row).Error
}

func (r *ProfileRepository) GetImplicitProfile(ctx context.Context, userID string) (*domain.ImplicitProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row implicitProfileRow
	err := r.DB.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query implicit_profiles: %w", err)
	}

	profile := &domain.ImplicitProfile{
		UserID:    row.UserID,
		UpdatedAt: row.UpdatedAt,
	}

	if len(row.AffinityJSON) > 0 {
		if err := json.Unmarshal(row.AffinityJSON, &profile.CategoryAffinity); err != nil {
			return nil, fmt.Errorf("failed to decode category affinity: %w", err)
		}
	}
	if len(row.VisitsJSON) > 0 {
		if err := json.Unmarshal(row.VisitsJSON, &profile.VisitCounts); err != nil {
			return nil, fmt.Errorf("failed to decode visit counts: %w", err)
		}
	}

	return profile, nil
}

