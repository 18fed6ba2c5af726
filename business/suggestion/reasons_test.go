package suggestion

import (
	"testing"

	"wayfinder/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reasonCodes(reasons []domain.Reason) []string {
	codes := make([]string, 0, len(reasons))
	for _, r := range reasons {
		codes = append(codes, r.Code)
	}
	return codes
}

func TestGenerateReasons_DistanceTiers(t *testing.T) {
	place := domain.Place{Rating: 3.0}

	reasons := GenerateReasons(domain.IntentQuick, place, 120, nil, 0, nil)
	require.NotEmpty(t, reasons)
	assert.Equal(t, "very_close", reasons[0].Code)

	reasons = GenerateReasons(domain.IntentQuick, place, 1500, nil, 0, nil)
	require.NotEmpty(t, reasons)
	assert.Equal(t, "close", reasons[0].Code)

	reasons = GenerateReasons(domain.IntentQuick, place, 3000, nil, 0, nil)
	assert.Empty(t, reasons)
}

func TestGenerateReasons_RatingTiers(t *testing.T) {
	far := 5000.0

	reasons := GenerateReasons(domain.IntentQuick, domain.Place{Rating: 4.6, ReviewCount: 200}, far, nil, 0, nil)
	assert.Equal(t, []string{"highly_rated"}, reasonCodes(reasons))

	reasons = GenerateReasons(domain.IntentQuick, domain.Place{Rating: 4.1}, far, nil, 0, nil)
	assert.Equal(t, []string{"well_rated"}, reasonCodes(reasons))

	reasons = GenerateReasons(domain.IntentQuick, domain.Place{Rating: 3.5}, far, nil, 0, nil)
	assert.Empty(t, reasons)
}

func TestGenerateReasons_PriorityOrderAndCap(t *testing.T) {
	place := domain.Place{Rating: 4.8, ReviewCount: 500}

	reasons := GenerateReasons(
		domain.IntentTrySomethingNew,
		place,
		100, // very close
		[]string{"food", "nightlife", "culture"}, // third must be dropped
		0.9, // novelty reason fires
		[]string{"Great weather to be outside"},
	)

	// capped at five, in fixed priority order; the contextual reason is the
	// one that falls off
	assert.Equal(t, []string{
		"very_close",
		"highly_rated",
		"preference_match",
		"preference_match",
		"novelty",
	}, reasonCodes(reasons))
	assert.Len(t, reasons, maxReasons)
}

func TestGenerateReasons_NoveltyGating(t *testing.T) {
	place := domain.Place{}
	far := 5000.0

	// fires only for TRY_SOMETHING_NEW above the threshold
	reasons := GenerateReasons(domain.IntentTrySomethingNew, place, far, nil, 0.7, nil)
	assert.Equal(t, []string{"novelty"}, reasonCodes(reasons))

	reasons = GenerateReasons(domain.IntentTrySomethingNew, place, far, nil, 0.5, nil)
	assert.Empty(t, reasons)

	reasons = GenerateReasons(domain.IntentQuick, place, far, nil, 0.9, nil)
	assert.Empty(t, reasons)
}

func TestGenerateReasons_AtMostTwoPreferenceMatches(t *testing.T) {
	reasons := GenerateReasons(
		domain.IntentQuick,
		domain.Place{},
		5000,
		[]string{"food", "culture", "outdoors", "wellness"},
		0,
		nil,
	)
	assert.Equal(t, []string{"preference_match", "preference_match"}, reasonCodes(reasons))
}

func TestContextualReasons(t *testing.T) {
	tests := []struct {
		name     string
		insights domain.ContextInsights
		place    domain.Place
		want     int
	}{
		{
			name:     "rain and indoor",
			insights: domain.ContextInsights{Weather: "rain"},
			place:    domain.Place{Indoor: true},
			want:     1,
		},
		{
			name:     "rain and outdoor",
			insights: domain.ContextInsights{Weather: "rain"},
			place:    domain.Place{Indoor: false},
			want:     0,
		},
		{
			name:     "clear and outdoor",
			insights: domain.ContextInsights{Weather: "clear"},
			place:    domain.Place{Indoor: false},
			want:     1,
		},
		{
			name:     "evening nightlife",
			insights: domain.ContextInsights{TimeOfDay: "evening"},
			place:    domain.Place{Category: "bar"},
			want:     1,
		},
		{
			name:     "evening museum",
			insights: domain.ContextInsights{TimeOfDay: "evening"},
			place:    domain.Place{Category: "museum"},
			want:     0,
		},
		{
			name:     "no insights",
			insights: domain.ContextInsights{},
			place:    domain.Place{Indoor: true, Category: "bar"},
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, contextualReasons(tt.insights, tt.place), tt.want)
		})
	}
}
