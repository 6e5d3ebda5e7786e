package hexmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b HexCoord
		want int
	}{
		{"identity", HexCoord{0, 0}, HexCoord{0, 0}, 0},
		{"adjacent east", HexCoord{0, 0}, HexCoord{1, 0}, 1},
		{"adjacent diagonal", HexCoord{0, 0}, HexCoord{1, -1}, 1},
		{"straight line", HexCoord{0, 0}, HexCoord{3, 0}, 3},
		{"dogleg", HexCoord{-2, 1}, HexCoord{3, -2}, 5},
		{"negative quadrant", HexCoord{0, 0}, HexCoord{-2, -2}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a), "distance must be symmetric")
		})
	}
}

func TestNeighbors(t *testing.T) {
	center := HexCoord{Q: 2, R: -3}
	neighbors := center.Neighbors()

	require.Len(t, neighbors, 6)
	seen := make(map[HexCoord]bool)
	for _, n := range neighbors {
		assert.Equal(t, 1, Distance(center, n))
		assert.False(t, seen[n], "neighbors must be distinct")
		seen[n] = true
	}
}

func TestHexIDRoundTrip(t *testing.T) {
	coords := []HexCoord{{0, 0}, {3, -7}, {-12, 5}, {100, -100}}
	for _, c := range coords {
		parsed, err := ParseHexID(c.HexID())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseHexID("not-a-hex")
	assert.Error(t, err)
	_, err = ParseHexID("1,two")
	assert.Error(t, err)
}

func TestRing(t *testing.T) {
	center := HexCoord{Q: 1, R: 1}

	assert.Equal(t, []HexCoord{center}, Ring(center, 0))

	for radius := 1; radius <= 4; radius++ {
		ring := Ring(center, radius)
		require.Len(t, ring, 6*radius, "ring %d", radius)
		for _, c := range ring {
			assert.Equal(t, radius, Distance(center, c))
		}
	}
}

func TestSpiral(t *testing.T) {
	center := HexCoord{}
	for radius := 0; radius <= 3; radius++ {
		spiral := Spiral(center, radius)
		// 1 + 6 + 12 + ... = 3r^2 + 3r + 1
		assert.Len(t, spiral, 3*radius*radius+3*radius+1)
		assert.Equal(t, center, spiral[0])
	}
}

func TestPixelRoundTrip(t *testing.T) {
	size := 10.0
	for q := -5; q <= 5; q++ {
		for r := -5; r <= 5; r++ {
			c := HexCoord{Q: q, R: r}
			x, y := AxialToPixel(c, size)
			assert.Equal(t, c, PixelToAxial(x, y, size))
		}
	}
}
