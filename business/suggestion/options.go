package suggestion

import (
	"fmt"
	"math"
)

// weights must sum to 1 within this tolerance
const weightSumTolerance = 0.01

// ScoringOptions is the process-wide scoring configuration. Validated once at
// startup; read-only during request processing.
type ScoringOptions struct {
	ImplicitWeight float64
	ExplicitWeight float64
	NoveltyWeight  float64
	ContextWeight  float64
	QualityWeight  float64

	MaxCandidates int
	MaxResults    int

	// ReviewSmoothing is the Bayesian smoothing constant: a place needs
	// roughly this many reviews before its rating counts at half strength.
	ReviewSmoothing float64

	// MinimumRating excludes candidates below this rating before scoring.
	// Zero disables the floor.
	MinimumRating float64

	DistancePenaltyStartMeters float64
	DistancePenaltyMaxMeters   float64

	EnableDebugFields bool
}

func DefaultScoringOptions() ScoringOptions {
	return ScoringOptions{
		ImplicitWeight:             0.25,
		ExplicitWeight:             0.20,
		NoveltyWeight:              0.15,
		ContextWeight:              0.15,
		QualityWeight:              0.25,
		MaxCandidates:              60,
		MaxResults:                 20,
		ReviewSmoothing:            20,
		MinimumRating:              0,
		DistancePenaltyStartMeters: 500,
		DistancePenaltyMaxMeters:   10000,
		EnableDebugFields:          false,
	}
}

// Validate rejects an invalid configuration. Meant to be called once at
// startup; a failure here must prevent the process from starting.
func (o ScoringOptions) Validate() error {
	weights := map[string]float64{
		"implicit": o.ImplicitWeight,
		"explicit": o.ExplicitWeight,
		"novelty":  o.NoveltyWeight,
		"context":  o.ContextWeight,
		"quality":  o.QualityWeight,
	}

	sum := 0.0
	for name, w := range weights {
		if w < 0 || w > 1 {
			return fmt.Errorf("scoring weight %s must be in [0, 1], got %g", name, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("scoring weights must sum to 1.0 (±%g), got %g", weightSumTolerance, sum)
	}

	if o.MaxResults <= 0 {
		return fmt.Errorf("max results must be positive, got %d", o.MaxResults)
	}
	if o.MaxCandidates < o.MaxResults {
		return fmt.Errorf("max candidates (%d) must not be below max results (%d)", o.MaxCandidates, o.MaxResults)
	}
	if o.ReviewSmoothing <= 0 {
		return fmt.Errorf("review smoothing must be positive, got %g", o.ReviewSmoothing)
	}
	if o.MinimumRating < 0 || o.MinimumRating > 5 {
		return fmt.Errorf("minimum rating must be in [0, 5], got %g", o.MinimumRating)
	}
	if o.DistancePenaltyStartMeters < 0 {
		return fmt.Errorf("distance penalty start must not be negative, got %g", o.DistancePenaltyStartMeters)
	}
	if o.DistancePenaltyMaxMeters <= o.DistancePenaltyStartMeters {
		return fmt.Errorf("distance penalty max (%g) must exceed start (%g)",
			o.DistancePenaltyMaxMeters, o.DistancePenaltyStartMeters)
	}

	return nil
}
