package routing

import (
	"context"
	"fmt"
	"math"

	"wayfinder/business/suggestion"
	"wayfinder/domain"
)

// average walking pace used for duration estimates, meters per minute
const walkingPaceMetersPerMinute = 80.0

// NearestNeighborOptimizer orders stops greedily from the first (highest
// ranked) place, always walking to the closest unvisited stop next, and cuts
// the route off once the walking budget is spent.
type NearestNeighborOptimizer struct{}

var _ suggestion.RouteOptimizer = (*NearestNeighborOptimizer)(nil)

func NewNearestNeighborOptimizer() *NearestNeighborOptimizer {
	return &NearestNeighborOptimizer{}
}

func (o *NearestNeighborOptimizer) Optimize(ctx context.Context, places []domain.Place, maxWalkingDistanceMeters int, mode string) (domain.RouteView, error) {
	if err := ctx.Err(); err != nil {
		return domain.RouteView{}, fmt.Errorf("context error: %w", err)
	}

	route := domain.RouteView{
		Stops: []domain.RouteStop{},
		Mode:  mode,
	}
	if len(places) == 0 {
		return route, nil
	}

	budget := float64(maxWalkingDistanceMeters)
	remaining := make([]domain.Place, len(places))
	copy(remaining, places)

	// the top-ranked place anchors the route
	current := remaining[0]
	remaining = remaining[1:]
	route.Stops = append(route.Stops, domain.RouteStop{Place: current, Order: 1})

	for len(remaining) > 0 {
		bestIdx := -1
		bestDist := math.MaxFloat64

		for i, p := range remaining {
			d := distanceMeters(current.Latitude, current.Longitude, p.Latitude, p.Longitude)
			if d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}

		if route.TotalDistanceMeters+bestDist > budget {
			break
		}

		current = remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)

		route.TotalDistanceMeters += bestDist
		route.Stops = append(route.Stops, domain.RouteStop{
			Place:             current,
			Order:             len(route.Stops) + 1,
			LegDistanceMeters: bestDist,
		})
	}

	route.EstimatedDurationMinutes = int(math.Ceil(route.TotalDistanceMeters / walkingPaceMetersPerMinute))

	return route, nil
}

func distanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000.0
	rad := math.Pi / 180.0

	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
