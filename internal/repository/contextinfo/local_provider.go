package contextinfo

import (
	"context"
	"fmt"
	"time"

	"wayfinder/business/suggestion"
	"wayfinder/domain"
)

// LocalProvider derives time-of-day and season from the request clock.
// Weather stays empty (unknown) unless a real weather integration is wired
// in its place; the scoring engine treats missing fields as neutral.
type LocalProvider struct{}

var _ suggestion.ContextProvider = (*LocalProvider)(nil)

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (p *LocalProvider) GetInsights(ctx context.Context, lat, lon float64, at time.Time) (domain.ContextInsights, error) {
	if err := ctx.Err(); err != nil {
		return domain.ContextInsights{}, fmt.Errorf("context error: %w", err)
	}

	return domain.ContextInsights{
		TimeOfDay: timeOfDay(at),
		Season:    season(at, lat),
	}, nil
}

func timeOfDay(t time.Time) string {
	switch h := t.Hour(); {
	case h < 6:
		return "night"
	case h < 12:
		return "morning"
	case h < 18:
		return "afternoon"
	case h < 22:
		return "evening"
	default:
		return "night"
	}
}

// season flips for the southern hemisphere
func season(t time.Time, lat float64) string {
	var s string
	switch t.Month() {
	case time.March, time.April, time.May:
		s = "spring"
	case time.June, time.July, time.August:
		s = "summer"
	case time.September, time.October, time.November:
		s = "autumn"
	default:
		s = "winter"
	}

	if lat < 0 {
		switch s {
		case "spring":
			return "autumn"
		case "summer":
			return "winter"
		case "autumn":
			return "spring"
		case "winter":
			return "summer"
		}
	}

	return s
}
