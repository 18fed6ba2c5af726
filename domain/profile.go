package domain

import "time"

// TasteProfile holds the user's explicit interest weights, one field per known
// dimension so unknown keys are impossible past the quiz boundary.
// All weights live in [0, 1].
type TasteProfile struct {
	UserID           string    `json:"user_id"`
	Food             float64   `json:"food"`
	Culture          float64   `json:"culture"`
	Nightlife        float64   `json:"nightlife"`
	Outdoors         float64   `json:"outdoors"`
	Shopping         float64   `json:"shopping"`
	Wellness         float64   `json:"wellness"`
	NoveltyTolerance float64   `json:"novelty_tolerance"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DimensionFor maps a place category onto a taste dimension. Returns the
// dimension name and weight, or ok=false for categories outside the profile.
func (p TasteProfile) DimensionFor(category string) (string, float64, bool) {
	switch category {
	case "restaurant", "cafe", "bakery", "food", "dessert", "street_food":
		return "food", p.Food, true
	case "museum", "gallery", "theater", "landmark", "historic_site":
		return "culture", p.Culture, true
	case "bar", "club", "music_venue", "nightlife":
		return "nightlife", p.Nightlife, true
	case "park", "garden", "trail", "viewpoint", "beach":
		return "outdoors", p.Outdoors, true
	case "market", "mall", "boutique", "bookstore":
		return "shopping", p.Shopping, true
	case "spa", "gym", "pool", "sauna":
		return "wellness", p.Wellness, true
	}
	return "", 0, false
}

// ImplicitProfile is the learned behavioral profile: per-category affinity in
// [0, 1] derived from visit and interaction history.
type ImplicitProfile struct {
	UserID           string             `json:"user_id"`
	CategoryAffinity map[string]float64 `json:"category_affinity"`
	VisitCounts      map[string]int     `json:"visit_counts"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

func (p ImplicitProfile) AffinityFor(category string) float64 {
	if p.CategoryAffinity == nil {
		return 0
	}
	return p.CategoryAffinity[category]
}

// ContextInsights is the best-effort real-time context bundle. Every field is
// optional; empty values degrade the context signal to neutral.
type ContextInsights struct {
	Weather   string `json:"weather,omitempty"`    // e.g. "clear", "rain", "snow"
	TimeOfDay string `json:"time_of_day,omitempty"` // "morning", "afternoon", "evening", "night"
	Season    string `json:"season,omitempty"`     // "spring", "summer", "autumn", "winter"
}

func (c ContextInsights) Empty() bool {
	return c.Weather == "" && c.TimeOfDay == "" && c.Season == ""
}
