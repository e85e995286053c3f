// pkg/waymap/path.go
package waymap

import (
	"errors"

	"github.com/jakecoffman/cp"
)

// ErrPathTooShort is returned when a path has fewer than two waypoints.
var ErrPathTooShort = errors.New("path must have at least 2 waypoints")

// Path — неизменяемая последовательность точек, по которой идут враги.
// Длины сегментов считаются один раз при создании.
type Path struct {
	waypoints []cp.Vector
	segments  []float64
	total     float64
}

// NewPath builds a path from the given waypoints. The slice is copied.
func NewPath(points []cp.Vector) (*Path, error) {
	if len(points) < 2 {
		return nil, ErrPathTooShort
	}

	p := &Path{
		waypoints: append([]cp.Vector(nil), points...),
		segments:  make([]float64, len(points)-1),
	}
	for i := 0; i < len(points)-1; i++ {
		d := points[i].Distance(points[i+1])
		p.segments[i] = d
		p.total += d
	}
	return p, nil
}

// Len returns the number of waypoints.
func (p *Path) Len() int {
	return len(p.waypoints)
}

// Waypoint returns the i-th waypoint.
func (p *Path) Waypoint(i int) cp.Vector {
	return p.waypoints[i]
}

// Start returns the first waypoint.
func (p *Path) Start() cp.Vector {
	return p.waypoints[0]
}

// End returns the last waypoint.
func (p *Path) End() cp.Vector {
	return p.waypoints[len(p.waypoints)-1]
}

// Waypoints returns a copy of all waypoints.
func (p *Path) Waypoints() []cp.Vector {
	return append([]cp.Vector(nil), p.waypoints...)
}

// SegmentLength returns the length of the segment from waypoint i to i+1.
func (p *Path) SegmentLength(i int) float64 {
	if i < 0 || i >= len(p.segments) {
		return 0
	}
	return p.segments[i]
}

// TotalLength returns the sum of all segment lengths.
func (p *Path) TotalLength() float64 {
	return p.total
}

// PointAt returns the point located at the given distance along the path.
// Distances outside [0, TotalLength] are clamped to the ends.
func (p *Path) PointAt(distance float64) cp.Vector {
	if distance <= 0 {
		return p.Start()
	}
	for i, seg := range p.segments {
		if distance <= seg {
			if seg == 0 {
				return p.waypoints[i+1]
			}
			return p.waypoints[i].Lerp(p.waypoints[i+1], distance/seg)
		}
		distance -= seg
	}
	return p.End()
}

// Travelled returns how far along the path a point is, given the index of the
// waypoint it last passed.
func (p *Path) Travelled(index int, pos cp.Vector) float64 {
	if index < 0 {
		return 0
	}
	if index >= len(p.segments) {
		return p.total
	}
	d := 0.0
	for i := 0; i < index; i++ {
		d += p.segments[i]
	}
	return d + p.waypoints[index].Distance(pos)
}
