package geo

import "math"

// earthRadiusKm is the mean radius of the Earth in kilometers.
const earthRadiusKm = 6371

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsFinite reports whether both components are real numbers.
// NaN and infinities come in through JSON-adjacent code paths and must never
// reach distance math or the store.
func (c Coordinate) IsFinite() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) &&
		!math.IsNaN(c.Lon) && !math.IsInf(c.Lon, 0)
}

// HaversineKm returns the great-circle distance between two coordinates in
// kilometers.
func HaversineKm(a, b Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Fence is the bounding box of the valid operating region.
// One region is configured per deployment.
type Fence struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the coordinate is finite and inside the fence.
// Violations are rejected at the boundary, never silently corrected.
func (f Fence) Contains(c Coordinate) bool {
	if !c.IsFinite() {
		return false
	}
	return c.Lat >= f.MinLat && c.Lat <= f.MaxLat &&
		c.Lon >= f.MinLon && c.Lon <= f.MaxLon
}
