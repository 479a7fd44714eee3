package facility

import (
	"math"
	"strings"
)

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the pair can be placed on a map.
// Zero on either axis is treated as "not geocoded".
func (c Coordinates) Valid() bool {
	for _, v := range []float64{c.Lat, c.Lng} {
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Facility is one entry of the innovation catalog (in practice, a startup).
type Facility struct {
	Name          string       `json:"name"`
	Sector        string       `json:"sector"`
	Segment       string       `json:"segment,omitempty"`
	Phase         string       `json:"phase"`
	Location      *Coordinates `json:"location,omitempty"`
	Address       string       `json:"address,omitempty"`
	Solution      string       `json:"solution,omitempty"`
	Audience      string       `json:"audience,omitempty"`
	Employees     string       `json:"employees,omitempty"`
	BusinessModel string       `json:"businessModel,omitempty"`
	Site          string       `json:"site,omitempty"`
}

// Placed reports whether the facility has usable coordinates.
func (f Facility) Placed() bool {
	return f.Location != nil && f.Location.Valid()
}

// SectorLabel prefers the detailed segment over the broad sector.
func (f Facility) SectorLabel() string {
	if s := strings.TrimSpace(f.Segment); s != "" {
		return s
	}
	return strings.TrimSpace(f.Sector)
}

// Placed filters the list down to facilities that can be routed, keeping order.
func Placed(items []Facility) []Facility {
	placed := make([]Facility, 0, len(items))
	for _, item := range items {
		if item.Placed() {
			placed = append(placed, item)
		}
	}
	return placed
}
