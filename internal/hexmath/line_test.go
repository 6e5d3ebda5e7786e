package hexmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	a := HexCoord{Q: 0, R: 0}

	t.Run("degenerate", func(t *testing.T) {
		assert.Equal(t, []HexCoord{a}, Line(a, a))
	})

	t.Run("endpoints and length", func(t *testing.T) {
		b := HexCoord{Q: 4, R: -2}
		line := Line(a, b)
		require.NotEmpty(t, line)
		assert.Equal(t, a, line[0])
		assert.Equal(t, b, line[len(line)-1])
		assert.Len(t, line, Distance(a, b)+1)
	})

	t.Run("consecutive steps adjacent", func(t *testing.T) {
		b := HexCoord{Q: -3, R: 5}
		line := Line(a, b)
		for i := 1; i < len(line); i++ {
			assert.Equal(t, 1, Distance(line[i-1], line[i]))
		}
	})
}

func TestFieldOfView(t *testing.T) {
	center := HexCoord{}
	open := func(HexCoord) bool { return false }

	t.Run("open ground sees everything", func(t *testing.T) {
		visible := FieldOfView(center, 2, open)
		assert.Len(t, visible, 19) // full radius-2 spiral
	})

	t.Run("center always visible", func(t *testing.T) {
		visible := FieldOfView(center, 1, func(HexCoord) bool { return true })
		assert.True(t, visible[center])
	})

	t.Run("blocker occludes behind it", func(t *testing.T) {
		wall := HexCoord{Q: 1, R: 0}
		visible := FieldOfView(center, 2, func(c HexCoord) bool { return c == wall })

		assert.True(t, visible[wall], "the blocker itself is visible")
		assert.False(t, visible[HexCoord{Q: 2, R: 0}], "hex behind the blocker is hidden")
		assert.True(t, visible[HexCoord{Q: 0, R: 2}], "off-axis hexes unaffected")
	})
}
