package domain

import "time"

type SuggestionIntent string

const (
	IntentQuick           SuggestionIntent = "QUICK"
	IntentFoodOnly        SuggestionIntent = "FOOD_ONLY"
	IntentActivityOnly    SuggestionIntent = "ACTIVITY_ONLY"
	IntentRoutePlanning   SuggestionIntent = "ROUTE_PLANNING"
	IntentTrySomethingNew SuggestionIntent = "TRY_SOMETHING_NEW"
)

func (i SuggestionIntent) Valid() bool {
	switch i {
	case IntentQuick, IntentFoodOnly, IntentActivityOnly, IntentRoutePlanning, IntentTrySomethingNew:
		return true
	}
	return false
}

// SuggestionRequest is the transport-agnostic request handed to the pipeline.
// UserID comes from the auth context, never from the request body.
type SuggestionRequest struct {
	Intent                SuggestionIntent `json:"intent"`
	Latitude              float64          `json:"latitude"`
	Longitude             float64          `json:"longitude"`
	RadiusMeters          int              `json:"radius_meters"`
	WalkingDistanceMeters *int             `json:"walking_distance_meters,omitempty"`
	BudgetLevel           *BudgetLevel     `json:"budget_level,omitempty"`
	IncludeCategories     []string         `json:"include_categories,omitempty"`
	ExcludeCategories     []string         `json:"exclude_categories,omitempty"`
	DietaryRestrictions   []string         `json:"dietary_restrictions,omitempty"`
	FreeText              string           `json:"free_text,omitempty"`
	Debug                 bool             `json:"-"`
	UserID                string           `json:"-"`
}

type Reason struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Weight  float64 `json:"weight,omitempty"`
}

type SignalContribution struct {
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// ScoreBreakdown is only populated on debug requests; it is never part of a
// regular response so the ranking cannot be reverse-engineered by clients.
type ScoreBreakdown struct {
	Implicit SignalContribution `json:"implicit"`
	Explicit SignalContribution `json:"explicit"`
	Novelty  SignalContribution `json:"novelty"`
	Context  SignalContribution `json:"context"`
	Quality  SignalContribution `json:"quality"`
}

type ScoredPlace struct {
	Place          Place           `json:"place"`
	Score          float64         `json:"score"`
	DistanceMeters float64         `json:"distance_meters"`
	Reasons        []Reason        `json:"reasons"`
	Breakdown      *ScoreBreakdown `json:"breakdown,omitempty"`
}

// FilterInfo summarizes which filters shaped the result. Informational only.
type FilterInfo struct {
	Intent              SuggestionIntent `json:"intent"`
	CategoryFilter      string           `json:"category_filter"`
	ExclusionsApplied   int              `json:"exclusions_applied"`
	BudgetLevel         *BudgetLevel     `json:"budget_level,omitempty"`
	IncludeCategories   []string         `json:"include_categories,omitempty"`
	ExcludeCategories   []string         `json:"exclude_categories,omitempty"`
	DietaryRestrictions []string         `json:"dietary_restrictions,omitempty"`
	MinimumRating       float64          `json:"minimum_rating,omitempty"`
}

type SuggestionMeta struct {
	RequestID       string    `json:"request_id"`
	SessionID       string    `json:"session_id,omitempty"`
	IsPersonalized  bool      `json:"is_personalized"`
	ContextApplied  bool      `json:"context_applied"`
	DiversityFactor float64   `json:"diversity_factor"`
	GeneratedAt     time.Time `json:"generated_at"`
}

type RouteStop struct {
	Place             Place   `json:"place"`
	Order             int     `json:"order"`
	LegDistanceMeters float64 `json:"leg_distance_meters"`
}

type RouteView struct {
	Stops                    []RouteStop `json:"stops"`
	TotalDistanceMeters      float64     `json:"total_distance_meters"`
	EstimatedDurationMinutes int         `json:"estimated_duration_minutes"`
	Mode                     string      `json:"mode"`
}

// SuggestionResult carries either a flat suggestion list or a built route,
// never both.
type SuggestionResult struct {
	Suggestions []ScoredPlace  `json:"suggestions,omitempty"`
	Route       *RouteView     `json:"route,omitempty"`
	TotalCount  int            `json:"total_count"`
	Filters     FilterInfo     `json:"filters"`
	Meta        SuggestionMeta `json:"metadata"`
}
