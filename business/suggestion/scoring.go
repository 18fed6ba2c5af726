package suggestion

import (
	"sort"

	"wayfinder/domain"
)

// tolerance used for novelty scaling when the user has no taste profile
const defaultNoveltyTolerance = 0.5

// explicit dimensions at or above this weight count as a preference match
const preferenceMatchThreshold = 0.6

// neutral value for the context signal when no insight is available
const neutralContextScore = 0.5

// Engine computes the hybrid score: five sub-scores in [0, 1] combined by
// the configured weights. It is a pure function of (context, candidates,
// options) — no hidden state, no randomness, deterministic ordering.
type Engine struct {
	opts ScoringOptions
}

// NewEngine expects options that already passed Validate.
func NewEngine(opts ScoringOptions) *Engine {
	return &Engine{opts: opts}
}

// ScoreAll scores the candidates, sorts them (score desc, distance asc, id
// asc) and truncates to MaxResults. Input places are never mutated.
func (e *Engine) ScoreAll(sctx ScoringContext, places []domain.Place) []domain.ScoredPlace {
	scored := make([]domain.ScoredPlace, 0, len(places))

	for _, p := range places {
		if e.opts.MinimumRating > 0 && p.Rating < e.opts.MinimumRating {
			continue
		}

		dist := haversineMeters(sctx.Origin.Latitude, sctx.Origin.Longitude, p.Latitude, p.Longitude)
		scored = append(scored, e.scoreOne(sctx, p, dist))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].DistanceMeters != scored[j].DistanceMeters {
			return scored[i].DistanceMeters < scored[j].DistanceMeters
		}
		return scored[i].Place.ID < scored[j].Place.ID
	})

	if len(scored) > e.opts.MaxResults {
		scored = scored[:e.opts.MaxResults]
	}

	return scored
}

func (e *Engine) scoreOne(sctx ScoringContext, p domain.Place, distanceMeters float64) domain.ScoredPlace {
	implicit := implicitScore(sctx.Implicit, p)
	explicit := explicitScore(sctx.Taste, p)
	novelty := noveltyScore(sctx, implicit, explicit)
	context := contextScore(sctx.Insights, p)
	quality := e.qualityScore(p, distanceMeters)

	final := implicit*e.opts.ImplicitWeight +
		explicit*e.opts.ExplicitWeight +
		novelty*e.opts.NoveltyWeight +
		context*e.opts.ContextWeight +
		quality*e.opts.QualityWeight

	sp := domain.ScoredPlace{
		Place:          p,
		Score:          clamp01(final),
		DistanceMeters: distanceMeters,
	}

	if sctx.Debug && e.opts.EnableDebugFields {
		sp.Breakdown = &domain.ScoreBreakdown{
			Implicit: contribution(implicit, e.opts.ImplicitWeight),
			Explicit: contribution(explicit, e.opts.ExplicitWeight),
			Novelty:  contribution(novelty, e.opts.NoveltyWeight),
			Context:  contribution(context, e.opts.ContextWeight),
			Quality:  contribution(quality, e.opts.QualityWeight),
		}
	}

	return sp
}

func contribution(score, weight float64) domain.SignalContribution {
	return domain.SignalContribution{
		Score:        score,
		Weight:       weight,
		Contribution: score * weight,
	}
}

// implicitScore is the learned category affinity: the strongest affinity
// across the place's categories, 0 without a profile.
func implicitScore(profile *domain.ImplicitProfile, p domain.Place) float64 {
	if profile == nil {
		return 0
	}

	best := 0.0
	for _, c := range p.AllCategories() {
		if aff := profile.AffinityFor(c); aff > best {
			best = aff
		}
	}
	return clamp01(best)
}

// explicitScore matches the taste-profile dimensions against the place's
// categories: the strongest matching dimension wins, 0 without a profile.
func explicitScore(taste *domain.TasteProfile, p domain.Place) float64 {
	if taste == nil {
		return 0
	}

	best := 0.0
	for _, c := range p.AllCategories() {
		if _, w, ok := taste.DimensionFor(c); ok && w > best {
			best = w
		}
	}
	return clamp01(best)
}

// matchedPreferences lists the taste dimensions the place satisfies above the
// match threshold; used for reason generation, not for the score itself.
func matchedPreferences(taste *domain.TasteProfile, p domain.Place) []string {
	if taste == nil {
		return nil
	}

	seen := map[string]struct{}{}
	var out []string
	for _, c := range p.AllCategories() {
		name, w, ok := taste.DimensionFor(c)
		if !ok || w < preferenceMatchThreshold {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// noveltyScore rewards dissimilarity from what the user already knows,
// scaled by their novelty tolerance. A user with no history gets the neutral
// midpoint so unfamiliarity alone does not dominate.
func noveltyScore(sctx ScoringContext, implicit, explicit float64) float64 {
	familiarity := implicit
	if explicit > familiarity {
		familiarity = explicit
	}

	tolerance := defaultNoveltyTolerance
	if sctx.Taste != nil {
		tolerance = clamp01(sctx.Taste.NoveltyTolerance)
	}

	return clamp01((1 - familiarity) * tolerance)
}

// contextScore rates how well the place fits the current weather, time of
// day and season. Missing insights degrade to the neutral midpoint.
func contextScore(insights domain.ContextInsights, p domain.Place) float64 {
	if insights.Empty() {
		return neutralContextScore
	}

	var components []float64

	if s, ok := weatherComponent(insights.Weather, p); ok {
		components = append(components, s)
	}
	if s, ok := timeOfDayComponent(insights.TimeOfDay, p); ok {
		components = append(components, s)
	}
	if s, ok := seasonComponent(insights.Season, p); ok {
		components = append(components, s)
	}

	if len(components) == 0 {
		return neutralContextScore
	}

	sum := 0.0
	for _, c := range components {
		sum += c
	}
	return clamp01(sum / float64(len(components)))
}

func weatherComponent(weather string, p domain.Place) (float64, bool) {
	switch weather {
	case "rain", "snow", "storm":
		if p.Indoor {
			return 0.9, true
		}
		return 0.2, true
	case "clear":
		if p.Indoor {
			return 0.55, true
		}
		return 0.8, true
	case "cloudy":
		return neutralContextScore, true
	default:
		return 0, false
	}
}

func timeOfDayComponent(timeOfDay string, p domain.Place) (float64, bool) {
	if timeOfDay == "" {
		return 0, false
	}

	for _, c := range p.AllCategories() {
		switch {
		case timeOfDay == "morning" && (c == "cafe" || c == "bakery"):
			return 0.9, true
		case (timeOfDay == "evening" || timeOfDay == "night") &&
			(c == "bar" || c == "club" || c == "music_venue" || c == "nightlife"):
			return 0.9, true
		case timeOfDay == "night" && (c == "park" || c == "trail" || c == "viewpoint"):
			return 0.2, true
		}
	}

	return neutralContextScore, true
}

func seasonComponent(season string, p domain.Place) (float64, bool) {
	if season == "" {
		return 0, false
	}

	outdoorsy := false
	for _, c := range p.AllCategories() {
		switch c {
		case "park", "garden", "trail", "viewpoint", "beach", "pool":
			outdoorsy = true
		}
	}

	switch season {
	case "winter":
		if outdoorsy && !p.Indoor {
			return 0.3, true
		}
		return 0.6, true
	case "summer":
		if outdoorsy {
			return 0.85, true
		}
		return neutralContextScore, true
	default:
		return neutralContextScore, true
	}
}

// qualityScore is the Bayesian-smoothed rating damped by distance decay:
// rating confidence grows with review count, and value falls off linearly
// between the penalty start and max radii.
func (e *Engine) qualityScore(p domain.Place, distanceMeters float64) float64 {
	smoothed := (p.Rating / 5.0) * float64(p.ReviewCount) / (float64(p.ReviewCount) + e.opts.ReviewSmoothing)
	return clamp01(smoothed * e.distanceDecay(distanceMeters))
}

func (e *Engine) distanceDecay(distanceMeters float64) float64 {
	start := e.opts.DistancePenaltyStartMeters
	max := e.opts.DistancePenaltyMaxMeters

	switch {
	case distanceMeters <= start:
		return 1.0
	case distanceMeters >= max:
		return 0.0
	default:
		return 1.0 - (distanceMeters-start)/(max-start)
	}
}
