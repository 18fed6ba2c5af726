package domain

import (
	"time"

	"gorm.io/datatypes"
)

// SuggestionEvent is the post-commit history record written after a request
// reaches its terminal state. It never participates in the request outcome.
type SuggestionEvent struct {
	ID              uint                        `gorm:"primaryKey" json:"id"`
	RequestID       string                      `gorm:"column:request_id;not null" json:"request_id"`
	UserID          string                      `gorm:"column:user_id;index" json:"user_id"`
	Intent          SuggestionIntent            `gorm:"column:intent;not null" json:"intent"`
	PlaceIDs        datatypes.JSONSlice[string] `gorm:"column:place_ids" json:"place_ids"`
	SuggestionCount int                         `gorm:"column:suggestion_count" json:"suggestion_count"`
	RouteBuilt      bool                        `gorm:"column:route_built" json:"route_built"`
	DurationMillis  int64                       `gorm:"column:duration_millis" json:"duration_millis"`
	Context         datatypes.JSONMap           `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt       time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// PlaceExclusion removes a place from a user's candidates, either permanently
// (user block) or until ExpiresAt (cool-down after a recent suggestion).
type PlaceExclusion struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"column:user_id;index;not null" json:"user_id"`
	PlaceID   string     `gorm:"column:place_id;not null" json:"place_id"`
	Permanent bool       `gorm:"column:permanent" json:"permanent"`
	ExpiresAt *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
