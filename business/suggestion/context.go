package suggestion

import (
	"time"

	"wayfinder/domain"
)

// ScoringContext is the immutable per-request bundle every scoring call reads
// from. Built once by the pipeline, never mutated afterwards.
type ScoringContext struct {
	UserID    string
	RequestID string
	SessionID string

	Origin      domain.Location
	RequestedAt time.Time

	Taste    *domain.TasteProfile
	Implicit *domain.ImplicitProfile
	Insights domain.ContextInsights

	FreeText string
	Debug    bool
}

// Personalized reports whether any user profile contributed to scoring.
func (c ScoringContext) Personalized() bool {
	return c.Taste != nil || c.Implicit != nil
}
