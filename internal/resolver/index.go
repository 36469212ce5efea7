package resolver

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"
	"github.com/shenikar/danger_zones/internal/models"
	"github.com/shenikar/danger_zones/pkg/geo"
)

const (
	tolerance   = 1e-6
	minChildren = 2
	maxChildren = 16
	dimensions  = 2
)

// Match - зона, попавшая в радиус поиска
type Match struct {
	ZoneID     uuid.UUID
	DistanceKm float64
	position   int
}

type zoneItem struct {
	id       uuid.UUID
	location geo.Coordinate
	position int
	rect     *rtreego.Rect
}

func (zi *zoneItem) Bounds() *rtreego.Rect {
	return zi.rect
}

// Index - R-Tree по координатам зон для поиска в радиусе
type Index struct {
	mu   sync.RWMutex
	tree *rtreego.Rtree
	size int
}

// NewIndex создает индекс по списку зон
func NewIndex(zones []models.Zone) *Index {
	idx := &Index{}
	idx.Rebuild(zones)
	return idx
}

// Rebuild перестраивает индекс; позиция зоны в zones используется для разрешения равенств
func (idx *Index) Rebuild(zones []models.Zone) {
	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	for i, z := range zones {
		tree.Insert(&zoneItem{
			id:       z.ID,
			location: z.Location,
			position: i,
			rect:     rtreego.Point{z.Location.Lat, z.Location.Lon}.ToRect(tolerance),
		})
	}

	idx.mu.Lock()
	idx.tree = tree
	idx.size = len(zones)
	idx.mu.Unlock()
}

// Size возвращает количество зон в индексе
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.size
}

// Within возвращает зоны в радиусе radiusKm от точки, отсортированные по расстоянию
func (idx *Index) Within(point geo.Coordinate, radiusKm float64) ([]Match, error) {
	if err := point.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidCoordinate, err)
	}
	if radiusKm <= 0 || math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return nil, models.ErrInvalidRadius
	}

	bounds, err := searchBounds(point, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("invalid radius search: %w", err)
	}

	idx.mu.RLock()
	results := idx.tree.SearchIntersect(bounds)
	idx.mu.RUnlock()

	matches := make([]Match, 0, len(results))
	for _, res := range results {
		item, ok := res.(*zoneItem)
		if !ok {
			continue
		}
		// Bounding box только отсекает кандидатов, точная проверка по haversine
		d := geo.DistanceKm(point, item.location)
		if d <= radiusKm {
			matches = append(matches, Match{ZoneID: item.id, DistanceKm: d, position: item.position})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].DistanceKm != matches[j].DistanceKm {
			return matches[i].DistanceKm < matches[j].DistanceKm
		}
		return matches[i].position < matches[j].position
	})
	return matches, nil
}

// searchBounds строит bounding box вокруг точки. Долгота расширяется
// с учетом широты; у полюсов и через антимеридиан берется вся полоса долгот.
func searchBounds(point geo.Coordinate, radiusKm float64) (*rtreego.Rect, error) {
	latDeg := geo.DegreesForKm(radiusKm)
	minLat := math.Max(point.Lat-latDeg, -90)
	maxLat := math.Min(point.Lat+latDeg, 90)

	minLon, maxLon := -180.0, 180.0
	if cosLat := math.Cos(point.Lat * math.Pi / 180); cosLat > 0.01 {
		lonDeg := latDeg / cosLat
		if point.Lon-lonDeg >= -180 && point.Lon+lonDeg <= 180 {
			minLon = point.Lon - lonDeg
			maxLon = point.Lon + lonDeg
		}
	}

	return rtreego.NewRect(
		rtreego.Point{minLat, minLon},
		[]float64{maxLat - minLat + tolerance, maxLon - minLon + tolerance},
	)
}
