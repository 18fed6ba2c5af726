package suggestion

import (
	"fmt"

	"wayfinder/domain"
)

const maxReasons = 5

// distance tiers, meters
const (
	veryCloseMeters = 500
	closeMeters     = 2000
)

// rating tiers
const (
	highlyRatedThreshold = 4.5
	wellRatedThreshold   = 4.0
)

// novelty reason shows only above this score and only for TRY_SOMETHING_NEW
const noveltyReasonThreshold = 0.6

// at most this many preference-match reasons
const maxPreferenceReasons = 2

// GenerateReasons composes the human-readable reasons for one suggestion in
// fixed priority order: distance, rating, preference matches, novelty,
// contextual. The result is capped at maxReasons.
func GenerateReasons(
	intent domain.SuggestionIntent,
	place domain.Place,
	distanceMeters float64,
	matchedPreferences []string,
	noveltyScore float64,
	contextualReasons []string,
) []domain.Reason {
	reasons := make([]domain.Reason, 0, maxReasons)

	switch {
	case distanceMeters < veryCloseMeters:
		reasons = append(reasons, domain.Reason{
			Code:    "very_close",
			Message: fmt.Sprintf("Only %d m away", int(distanceMeters)),
		})
	case distanceMeters < closeMeters:
		reasons = append(reasons, domain.Reason{
			Code:    "close",
			Message: fmt.Sprintf("A short %.1f km walk", distanceMeters/1000),
		})
	}

	switch {
	case place.Rating >= highlyRatedThreshold:
		reasons = append(reasons, domain.Reason{
			Code:    "highly_rated",
			Message: fmt.Sprintf("Highly rated (%.1f from %d reviews)", place.Rating, place.ReviewCount),
		})
	case place.Rating >= wellRatedThreshold:
		reasons = append(reasons, domain.Reason{
			Code:    "well_rated",
			Message: fmt.Sprintf("Well rated (%.1f)", place.Rating),
		})
	}

	for i, pref := range matchedPreferences {
		if i >= maxPreferenceReasons {
			break
		}
		reasons = append(reasons, domain.Reason{
			Code:    "preference_match",
			Message: fmt.Sprintf("Matches your interest in %s", pref),
		})
	}

	if intent == domain.IntentTrySomethingNew && noveltyScore > noveltyReasonThreshold {
		reasons = append(reasons, domain.Reason{
			Code:    "novelty",
			Message: "Something different from your usual spots",
			Weight:  noveltyScore,
		})
	}

	for _, msg := range contextualReasons {
		reasons = append(reasons, domain.Reason{
			Code:    "context",
			Message: msg,
		})
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}

	return reasons
}

// contextualReasons derives weather/time/season reason strings for a place.
func contextualReasons(insights domain.ContextInsights, place domain.Place) []string {
	var out []string

	switch insights.Weather {
	case "rain", "snow":
		if place.Indoor {
			out = append(out, "A cozy indoor pick for this weather")
		}
	case "clear":
		if !place.Indoor {
			out = append(out, "Great weather to be outside")
		}
	}

	if insights.TimeOfDay == "evening" || insights.TimeOfDay == "night" {
		for _, c := range place.AllCategories() {
			if c == "bar" || c == "club" || c == "music_venue" || c == "nightlife" {
				out = append(out, "Popular at this time of the evening")
				break
			}
		}
	}

	return out
}
