// Package resolver выбирает зоны по географической близости.
package resolver

import (
	"fmt"
	"math"

	"github.com/shenikar/danger_zones/internal/models"
	"github.com/shenikar/danger_zones/pkg/geo"
)

// Nearest возвращает ближайшую к точке зону и расстояние до нее в километрах.
// При равных расстояниях побеждает первая зона в порядке zones.
func Nearest(point geo.Coordinate, zones []models.Zone) (models.Zone, float64, error) {
	if err := point.Validate(); err != nil {
		return models.Zone{}, 0, fmt.Errorf("%w: %v", models.ErrInvalidCoordinate, err)
	}
	if len(zones) == 0 {
		return models.Zone{}, 0, models.ErrEmptyRegistry
	}

	best := -1
	bestDist := math.MaxFloat64
	for i, z := range zones {
		d := geo.DistanceKm(point, z.Location)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return models.Zone{}, 0, fmt.Errorf("no finite distance to any of %d zones", len(zones))
	}
	return zones[best], bestDist, nil
}
