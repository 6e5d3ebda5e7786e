// Package hexmath provides axial hex-coordinate geometry: distances,
// neighbors, rings, line tracing, field of view, and pixel projection.
// All functions are pure and total over integer inputs.
package hexmath

import (
	"fmt"
	"strconv"
	"strings"
)

// HexCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// HexID returns the canonical string form "q,r".
func (h HexCoord) HexID() string {
	return fmt.Sprintf("%d,%d", h.Q, h.R)
}

// ParseHexID parses the "q,r" form produced by HexID.
func ParseHexID(id string) (HexCoord, error) {
	parts := strings.SplitN(id, ",", 2)
	if len(parts) != 2 {
		return HexCoord{}, fmt.Errorf("malformed hex id %q", id)
	}
	q, err := strconv.Atoi(parts[0])
	if err != nil {
		return HexCoord{}, fmt.Errorf("malformed hex id %q: %w", id, err)
	}
	r, err := strconv.Atoi(parts[1])
	if err != nil {
		return HexCoord{}, fmt.Errorf("malformed hex id %q: %w", id, err)
	}
	return HexCoord{Q: q, R: r}, nil
}

// NeighborDirections defines the six neighbor offsets in axial coordinates,
// ordered counterclockwise starting from east.
var NeighborDirections = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range NeighborDirections {
		result[i] = HexCoord{Q: h.Q + dir.Q, R: h.R + dir.R}
	}
	return result
}

// Add returns the component-wise sum of two coordinates.
func (h HexCoord) Add(o HexCoord) HexCoord {
	return HexCoord{Q: h.Q + o.Q, R: h.R + o.R}
}

// Scale multiplies both components by k.
func (h HexCoord) Scale(k int) HexCoord {
	return HexCoord{Q: h.Q * k, R: h.R * k}
}

// Distance returns the hex distance between two coordinates.
// Max of the three absolute differences in cube coordinates.
func Distance(a, b HexCoord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

// Ring returns the hexes at exactly the given distance from center, in
// traversal order. Radius 0 yields just the center.
func Ring(center HexCoord, radius int) []HexCoord {
	if radius <= 0 {
		return []HexCoord{center}
	}
	result := make([]HexCoord, 0, 6*radius)
	// Start at the hex radius steps toward direction 4 (southwest), then walk
	// each of the six sides.
	cur := center.Add(NeighborDirections[4].Scale(radius))
	for side := 0; side < 6; side++ {
		for step := 0; step < radius; step++ {
			result = append(result, cur)
			cur = cur.Add(NeighborDirections[side])
		}
	}
	return result
}

// Spiral returns the center plus every ring out to the given radius,
// in increasing-distance order.
func Spiral(center HexCoord, radius int) []HexCoord {
	result := []HexCoord{center}
	for r := 1; r <= radius; r++ {
		result = append(result, Ring(center, r)...)
	}
	return result
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
