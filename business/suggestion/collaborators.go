package suggestion

import (
	"context"
	"time"

	"wayfinder/domain"
)

// PlaceQuery is the provider-facing search shape.
type PlaceQuery struct {
	Latitude            float64
	Longitude           float64
	RadiusMeters        int
	BudgetLevel         *domain.BudgetLevel
	IncludeCategories   []string
	ExcludeCategories   []string
	DietaryRestrictions []string
}

// PlaceProvider searches for raw candidates. Empty or partial results are
// valid; only a hard failure is an error.
type PlaceProvider interface {
	Search(ctx context.Context, query PlaceQuery) ([]domain.Place, error)
}

// ContextProvider looks up real-time context. Best-effort: any failure
// degrades the context signal to neutral, it never blocks a request.
type ContextProvider interface {
	GetInsights(ctx context.Context, lat, lon float64, at time.Time) (domain.ContextInsights, error)
}

// RouteOptimizer orders the selected places into a walkable route.
type RouteOptimizer interface {
	Optimize(ctx context.Context, places []domain.Place, maxWalkingDistanceMeters int, mode string) (domain.RouteView, error)
}

// ExclusionStore loads the user's blocked and recently suggested places.
// Skipped entirely for anonymous users.
type ExclusionStore interface {
	GetActiveExclusions(ctx context.Context, userID string) (map[string]struct{}, error)
	GetRecentSuggestions(ctx context.Context, userID string, n int) ([]string, error)
}

// ProfileStore loads the user's taste and implicit profiles; both return
// nil without error when the user has none.
type ProfileStore interface {
	GetTasteProfile(ctx context.Context, userID string) (*domain.TasteProfile, error)
	GetImplicitProfile(ctx context.Context, userID string) (*domain.ImplicitProfile, error)
}

// EventRecorder persists the post-commit history event.
type EventRecorder interface {
	SaveEvent(ctx context.Context, event domain.SuggestionEvent) error
}

// Admission is the slice of the quota service the pipeline needs.
type Admission interface {
	InitializeIfNeeded(ctx context.Context, userID string) error
	TryConsume(ctx context.Context, userID string, amount int) bool
}
