package waymap

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestNewPathRejectsShortPaths(t *testing.T) {
	cases := []struct {
		name   string
		points []cp.Vector
	}{
		{"nil", nil},
		{"single", []cp.Vector{{X: 1, Y: 1}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewPath(c.points); !errors.Is(err, ErrPathTooShort) {
				t.Errorf("expected ErrPathTooShort, got %v", err)
			}
		})
	}
}

func TestPathLengths(t *testing.T) {
	p, err := NewPath([]cp.Vector{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 10}})
	if err != nil {
		t.Fatalf("NewPath: %v", err)
	}
	if p.TotalLength() != 11 {
		t.Errorf("expected total length 11, got %f", p.TotalLength())
	}
	if p.SegmentLength(0) != 5 || p.SegmentLength(1) != 6 {
		t.Errorf("unexpected segment lengths %f, %f", p.SegmentLength(0), p.SegmentLength(1))
	}
	if p.SegmentLength(5) != 0 {
		t.Errorf("out of range segment should be 0")
	}
}

func TestPathPointAt(t *testing.T) {
	p, _ := NewPath([]cp.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}})
	cases := []struct {
		d    float64
		want cp.Vector
	}{
		{-5, cp.Vector{X: 0, Y: 0}},
		{5, cp.Vector{X: 5, Y: 0}},
		{15, cp.Vector{X: 10, Y: 5}},
		{50, cp.Vector{X: 10, Y: 10}},
	}
	for _, c := range cases {
		got := p.PointAt(c.d)
		if math.Abs(got.X-c.want.X) > 1e-9 || math.Abs(got.Y-c.want.Y) > 1e-9 {
			t.Errorf("PointAt(%f) = %v, want %v", c.d, got, c.want)
		}
	}
}

func TestPathCopiesInput(t *testing.T) {
	points := []cp.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}}
	p, _ := NewPath(points)
	points[0] = cp.Vector{X: 99, Y: 99}
	if p.Start().X != 0 {
		t.Errorf("path must not alias the caller's slice")
	}
}

func TestMapCanBuildAt(t *testing.T) {
	open, err := NewMap("open", "Open", []cp.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}}, nil, "")
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	if !open.CanBuildAt(cp.Vector{X: 123.4, Y: 5}) {
		t.Errorf("map without tile list should allow building anywhere")
	}

	restricted, _ := NewMap("r", "R", []cp.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}}, []string{"2,3"}, "")
	if !restricted.CanBuildAt(cp.Vector{X: 2*TileSize + 10.7, Y: 3*TileSize + 0.2}) {
		t.Errorf("expected tile 2,3 to be buildable")
	}
	if restricted.CanBuildAt(cp.Vector{X: 3 * TileSize, Y: 3 * TileSize}) {
		t.Errorf("expected tile 3,3 to be blocked")
	}
	if got := TileKey(cp.Vector{X: -1, Y: 65}); got != "-1,1" {
		t.Errorf("TileKey = %q, want -1,1", got)
	}
}

func TestBuildableTilesSorted(t *testing.T) {
	m, _ := NewMap("r", "R", []cp.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}}, []string{"4,5", "10,3", "4,3"}, "")
	got := m.BuildableTiles()
	want := []string{"10,3", "4,3", "4,5"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
	if (*Map)(nil).BuildableTiles() != nil {
		t.Error("nil map should have no tiles")
	}
}
