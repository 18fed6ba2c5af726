package suggestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoringOptions_DefaultsAreValid(t *testing.T) {
	assert.NoError(t, DefaultScoringOptions().Validate())
}

func TestScoringOptions_WeightSum(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ScoringOptions)
		wantErr bool
	}{
		{
			name:    "sum far below one",
			mutate:  func(o *ScoringOptions) { o.QualityWeight = 0.05 },
			wantErr: true,
		},
		{
			name:    "sum far above one",
			mutate:  func(o *ScoringOptions) { o.QualityWeight = 0.45 },
			wantErr: true,
		},
		{
			name:    "sum just inside tolerance low",
			mutate:  func(o *ScoringOptions) { o.QualityWeight = 0.245 },
			wantErr: false,
		},
		{
			name:    "sum just inside tolerance high",
			mutate:  func(o *ScoringOptions) { o.QualityWeight = 0.255 },
			wantErr: false,
		},
		{
			name:    "negative weight",
			mutate:  func(o *ScoringOptions) { o.NoveltyWeight = -0.1 },
			wantErr: true,
		},
		{
			name:    "weight above one",
			mutate:  func(o *ScoringOptions) { o.ImplicitWeight = 1.2 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultScoringOptions()
			tt.mutate(&opts)

			err := opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScoringOptions_StructuralBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ScoringOptions)
	}{
		{"zero max results", func(o *ScoringOptions) { o.MaxResults = 0 }},
		{"candidates below results", func(o *ScoringOptions) { o.MaxCandidates = 5; o.MaxResults = 20 }},
		{"zero review smoothing", func(o *ScoringOptions) { o.ReviewSmoothing = 0 }},
		{"minimum rating above five", func(o *ScoringOptions) { o.MinimumRating = 6 }},
		{"negative penalty start", func(o *ScoringOptions) { o.DistancePenaltyStartMeters = -1 }},
		{"penalty max not above start", func(o *ScoringOptions) {
			o.DistancePenaltyStartMeters = 1000
			o.DistancePenaltyMaxMeters = 1000
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultScoringOptions()
			tt.mutate(&opts)
			assert.Error(t, opts.Validate())
		})
	}
}
