// pkg/waymap/map.go
package waymap

import (
	"fmt"
	"math"
	"sort"

	"github.com/jakecoffman/cp"
)

// Map is a loaded battlefield: the enemy path plus optional build restrictions.
type Map struct {
	ID         string
	Name       string
	Background string
	Path       *Path
	buildable  map[string]struct{}
}

// NewMap creates a map. An empty tile list means towers may be built anywhere.
func NewMap(id, name string, waypoints []cp.Vector, buildableTiles []string, background string) (*Map, error) {
	path, err := NewPath(waypoints)
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", id, err)
	}
	m := &Map{
		ID:         id,
		Name:       name,
		Background: background,
		Path:       path,
		buildable:  make(map[string]struct{}, len(buildableTiles)),
	}
	for _, tile := range buildableTiles {
		m.buildable[tile] = struct{}{}
	}
	return m, nil
}

// TileSize is the edge of one buildable tile in pixels.
const TileSize = 64.0

// TileKey formats the tile under p as a "x,y" buildable tile key.
func TileKey(p cp.Vector) string {
	return fmt.Sprintf("%d,%d", int(math.Floor(p.X/TileSize)), int(math.Floor(p.Y/TileSize)))
}

// CanBuildAt reports whether the map allows a tower at p.
func (m *Map) CanBuildAt(p cp.Vector) bool {
	if m == nil {
		return false
	}
	if len(m.buildable) == 0 {
		return true
	}
	_, ok := m.buildable[TileKey(p)]
	return ok
}

// Restricted reports whether the map has an explicit buildable tile list.
func (m *Map) Restricted() bool {
	return m != nil && len(m.buildable) > 0
}

// BuildableTiles returns the buildable tile keys in sorted order.
func (m *Map) BuildableTiles() []string {
	if m == nil {
		return nil
	}
	tiles := make([]string, 0, len(m.buildable))
	for t := range m.buildable {
		tiles = append(tiles, t)
	}
	sort.Strings(tiles)
	return tiles
}
