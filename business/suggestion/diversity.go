package suggestion

import (
	"sort"

	"wayfinder/domain"
)

// penalty applied per repeated primary category, scaled by the intent's
// diversity factor
const categoryRepeatPenalty = 0.15

// applyDiversity down-ranks near-duplicate categories after scoring. It
// walks the score-ordered list, penalizing each repeat of an already-seen
// primary category, then re-sorts once with the engine's tie-break rules.
// Reads only the final score and the category, so the novelty signal inside
// the score is not double-counted. Deterministic.
func applyDiversity(scored []domain.ScoredPlace, factor float64) []domain.ScoredPlace {
	if factor <= 0 || len(scored) < 2 {
		return scored
	}

	seen := make(map[string]int, len(scored))
	out := make([]domain.ScoredPlace, len(scored))

	for i, sp := range scored {
		repeats := seen[sp.Place.Category]
		seen[sp.Place.Category] = repeats + 1

		if repeats > 0 {
			sp.Score = clamp01(sp.Score - factor*categoryRepeatPenalty*float64(repeats))
		}
		out[i] = sp
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].DistanceMeters != out[j].DistanceMeters {
			return out[i].DistanceMeters < out[j].DistanceMeters
		}
		return out[i].Place.ID < out[j].Place.ID
	})

	return out
}
