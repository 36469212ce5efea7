package geo

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

// Coordinate - точка на поверхности Земли в градусах
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate проверяет, что координата лежит в допустимом диапазоне
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return fmt.Errorf("coordinate is NaN")
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Lon)
	}
	return nil
}

// DistanceKm возвращает расстояние по большому кругу между двумя точками в километрах (haversine)
func DistanceKm(a, b Coordinate) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// Округление у антиподов может вывести h за [0, 1], тогда Sqrt(1-h) дает NaN
	h = math.Min(1, math.Max(0, h))

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DegreesForKm грубо переводит километры в градусы дуги (для bounding box)
func DegreesForKm(km float64) float64 {
	return (km / earthRadiusKm) * (180 / math.Pi)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
