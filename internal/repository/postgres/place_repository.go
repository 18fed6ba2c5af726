package postgres

import (
	"context"
	"fmt"
	"math"

	"wayfinder/business/suggestion"
	"wayfinder/domain"

	"gorm.io/gorm"
)

// generous pre-filter cap; the pipeline trims to its own candidate budget
const searchRowLimit = 200

// PlaceRepository serves place candidates from the local places table. It is
// one PlaceProvider implementation; selection between providers happens once
// at process wiring time.
type PlaceRepository struct {
	DB *gorm.DB
}

var _ suggestion.PlaceProvider = (*PlaceRepository)(nil)

func NewPlaceRepository(db *gorm.DB) *PlaceRepository {
	return &PlaceRepository{DB: db}
}

func (r *PlaceRepository) Search(ctx context.Context, query suggestion.PlaceQuery) ([]domain.Place, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	// bounding box first, exact haversine refinement after
	latDelta := float64(query.RadiusMeters) / 111320.0
	lonDelta := latDelta
	if cosLat := math.Cos(query.Latitude * math.Pi / 180.0); cosLat > 0.01 {
		lonDelta = float64(query.RadiusMeters) / (111320.0 * cosLat)
	}

	q := r.DB.WithContext(ctx).
		Where("latitude BETWEEN ? AND ?", query.Latitude-latDelta, query.Latitude+latDelta).
		Where("longitude BETWEEN ? AND ?", query.Longitude-lonDelta, query.Longitude+lonDelta)

	if query.BudgetLevel != nil {
		if level := query.BudgetLevel.PriceLevel(); level >= 0 {
			q = q.Where("price_level <= ?", level)
		}
	}
	if len(query.IncludeCategories) > 0 {
		q = q.Where("category IN ?", query.IncludeCategories)
	}
	if len(query.ExcludeCategories) > 0 {
		q = q.Where("category NOT IN ?", query.ExcludeCategories)
	}

	var rows []domain.Place
	if err := q.Order("rating DESC").Limit(searchRowLimit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}

	out := make([]domain.Place, 0, len(rows))
	for _, p := range rows {
		if !withinRadius(query.Latitude, query.Longitude, p.Latitude, p.Longitude, float64(query.RadiusMeters)) {
			continue
		}
		if !matchesDietary(p, query.DietaryRestrictions) {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

// matchesDietary keeps only places tagged with every requested restriction.
// Non-food places pass untouched.
func matchesDietary(p domain.Place, restrictions []string) bool {
	if len(restrictions) == 0 {
		return true
	}
	if !suggestion.IsFoodPlace(p) {
		return true
	}

	for _, restriction := range restrictions {
		if !p.HasTag(restriction) {
			return false
		}
	}
	return true
}

func withinRadius(lat1, lon1, lat2, lon2, radiusMeters float64) bool {
	const earthRadius = 6371000.0
	rad := math.Pi / 180.0

	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	dist := earthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return dist <= radiusMeters
}
