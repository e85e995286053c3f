// internal/defs/maps.go
package defs

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"tg-tower-defense/pkg/waymap"
)

// MapDefinition is a map as it is stored in the map table.
type MapDefinition struct {
	ID             string      `json:"id" yaml:"id"`
	Name           string      `json:"name" yaml:"name"`
	Waypoints      [][]float64 `json:"waypoints" yaml:"waypoints"`
	BuildableTiles []string    `json:"buildableTiles,omitempty" yaml:"buildableTiles,omitempty"`
	Background     string      `json:"background,omitempty" yaml:"background,omitempty"`
}

// Build converts the definition into a playable map.
func (d MapDefinition) Build() (*waymap.Map, error) {
	points := make([]cp.Vector, 0, len(d.Waypoints))
	for i, wp := range d.Waypoints {
		if len(wp) != 2 {
			return nil, fmt.Errorf("map %q waypoint %d: expected [x, y], got %d values: %w", d.ID, i, len(wp), ErrInvalidDefinition)
		}
		points = append(points, cp.Vector{X: wp[0], Y: wp[1]})
	}
	m, err := waymap.NewMap(d.ID, d.Name, points, d.BuildableTiles, d.Background)
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", d.ID, err)
	}
	return m, nil
}
