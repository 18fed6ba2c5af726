package suggestion

import (
	"fmt"

	"wayfinder/domain"
)

// request bounds
const (
	minRadiusMeters          = 100
	maxRadiusMeters          = 50000
	minWalkingDistanceMeters = 500
	maxWalkingDistanceMeters = 10000

	maxIncludeCategories   = 10
	maxExcludeCategories   = 10
	maxDietaryRestrictions = 5
)

// diversity factors per intent
const (
	diversityHigh   = 0.85
	diversityMedium = 0.5
	diversityLow    = 0.25
)

// default walking distances per intent, meters
const (
	defaultWalkQuick         = 1000
	defaultWalkFoodOnly      = 1500
	defaultWalkActivityOnly  = 2000
	defaultWalkTryNew        = 2500
	defaultWalkRoutePlanning = 5000
)

var foodCategories = map[string]struct{}{
	"restaurant":  {},
	"cafe":        {},
	"bakery":      {},
	"bar":         {},
	"food":        {},
	"dessert":     {},
	"street_food": {},
}

// IsFoodPlace reports whether any of the place's categories is a food one.
func IsFoodPlace(p domain.Place) bool {
	for _, c := range p.AllCategories() {
		if _, ok := foodCategories[c]; ok {
			return true
		}
	}
	return false
}

// ValidateRequest checks the request against intent policy and returns every
// violation found, not just the first.
func ValidateRequest(req domain.SuggestionRequest) []FieldViolation {
	var violations []FieldViolation

	if !req.Intent.Valid() {
		violations = append(violations, FieldViolation{
			Field:   "intent",
			Message: fmt.Sprintf("unknown intent %q", string(req.Intent)),
		})
	}

	if req.Latitude < -90 || req.Latitude > 90 {
		violations = append(violations, FieldViolation{
			Field:   "latitude",
			Message: fmt.Sprintf("must be in [-90, 90], got %g", req.Latitude),
		})
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		violations = append(violations, FieldViolation{
			Field:   "longitude",
			Message: fmt.Sprintf("must be in [-180, 180], got %g", req.Longitude),
		})
	}

	if req.RadiusMeters < minRadiusMeters || req.RadiusMeters > maxRadiusMeters {
		violations = append(violations, FieldViolation{
			Field:   "radius_meters",
			Message: fmt.Sprintf("must be in [%d, %d], got %d", minRadiusMeters, maxRadiusMeters, req.RadiusMeters),
		})
	}

	if req.Intent == domain.IntentRoutePlanning && req.WalkingDistanceMeters == nil {
		violations = append(violations, FieldViolation{
			Field:   "walking_distance_meters",
			Message: "required for ROUTE_PLANNING",
		})
	}
	if req.WalkingDistanceMeters != nil {
		if wd := *req.WalkingDistanceMeters; wd < minWalkingDistanceMeters || wd > maxWalkingDistanceMeters {
			violations = append(violations, FieldViolation{
				Field:   "walking_distance_meters",
				Message: fmt.Sprintf("must be in [%d, %d], got %d", minWalkingDistanceMeters, maxWalkingDistanceMeters, wd),
			})
		}
	}

	if req.BudgetLevel != nil && req.BudgetLevel.PriceLevel() < 0 {
		violations = append(violations, FieldViolation{
			Field:   "budget_level",
			Message: fmt.Sprintf("unknown budget level %q", string(*req.BudgetLevel)),
		})
	}

	if len(req.IncludeCategories) > maxIncludeCategories {
		violations = append(violations, FieldViolation{
			Field:   "include_categories",
			Message: fmt.Sprintf("at most %d entries, got %d", maxIncludeCategories, len(req.IncludeCategories)),
		})
	}
	if len(req.ExcludeCategories) > maxExcludeCategories {
		violations = append(violations, FieldViolation{
			Field:   "exclude_categories",
			Message: fmt.Sprintf("at most %d entries, got %d", maxExcludeCategories, len(req.ExcludeCategories)),
		})
	}
	if len(req.DietaryRestrictions) > maxDietaryRestrictions {
		violations = append(violations, FieldViolation{
			Field:   "dietary_restrictions",
			Message: fmt.Sprintf("at most %d entries, got %d", maxDietaryRestrictions, len(req.DietaryRestrictions)),
		})
	}

	return violations
}

// ApplyIntentFilter enforces the category policy of the intent and drops
// excluded place ids. FOOD_ONLY must never leak a non-food place and
// ACTIVITY_ONLY must never leak a food one; QUICK and TRY_SOMETHING_NEW pass
// categories through untouched.
func ApplyIntentFilter(intent domain.SuggestionIntent, places []domain.Place, userExclusions map[string]struct{}) []domain.Place {
	out := make([]domain.Place, 0, len(places))

	for _, p := range places {
		if _, excluded := userExclusions[p.ID]; excluded {
			continue
		}

		switch intent {
		case domain.IntentFoodOnly:
			if !IsFoodPlace(p) {
				continue
			}
		case domain.IntentActivityOnly:
			if IsFoodPlace(p) {
				continue
			}
		}

		out = append(out, p)
	}

	return out
}

// ShouldBuildRoute is true only for ROUTE_PLANNING.
func ShouldBuildRoute(intent domain.SuggestionIntent) bool {
	return intent == domain.IntentRoutePlanning
}

// DiversityFactor controls how aggressively repeated categories are
// down-ranked after scoring.
func DiversityFactor(intent domain.SuggestionIntent) float64 {
	switch intent {
	case domain.IntentTrySomethingNew:
		return diversityHigh
	case domain.IntentQuick:
		return diversityLow
	default:
		return diversityMedium
	}
}

// MaxWalkingDistance returns the user preference when it is inside policy
// bounds, otherwise the intent-specific default.
func MaxWalkingDistance(intent domain.SuggestionIntent, userPreference *int) int {
	if userPreference != nil {
		if wd := *userPreference; wd >= minWalkingDistanceMeters && wd <= maxWalkingDistanceMeters {
			return wd
		}
	}

	switch intent {
	case domain.IntentQuick:
		return defaultWalkQuick
	case domain.IntentFoodOnly:
		return defaultWalkFoodOnly
	case domain.IntentActivityOnly:
		return defaultWalkActivityOnly
	case domain.IntentTrySomethingNew:
		return defaultWalkTryNew
	case domain.IntentRoutePlanning:
		return defaultWalkRoutePlanning
	default:
		return defaultWalkActivityOnly
	}
}
