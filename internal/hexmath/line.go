package hexmath

// Line returns the hexes on the straight line from a to b inclusive, using
// linear interpolation in cube space and cube rounding. A zero-length line
// (a == b) yields just [a]; the divide-by-zero case never arises.
func Line(a, b HexCoord) []HexCoord {
	n := Distance(a, b)
	if n == 0 {
		return []HexCoord{a}
	}

	result := make([]HexCoord, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		fq := lerp(float64(a.Q), float64(b.Q), t)
		fr := lerp(float64(a.R), float64(b.R), t)
		result = append(result, cubeRound(fq, fr))
	}
	return result
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// FieldOfView returns the set of hexes visible from center within the given
// radius. A hex is visible iff no intermediate hex on the line back to center
// is a blocker. The center itself is always visible; blockers are visible but
// block everything behind them.
func FieldOfView(center HexCoord, radius int, blocked func(HexCoord) bool) map[HexCoord]bool {
	visible := map[HexCoord]bool{center: true}

	for r := 1; r <= radius; r++ {
		for _, target := range Ring(center, r) {
			line := Line(center, target)
			clear := true
			// Skip the endpoints: center never blocks, and a blocker at the
			// target is itself visible.
			for _, step := range line[1 : len(line)-1] {
				if blocked(step) {
					clear = false
					break
				}
			}
			if clear {
				visible[target] = true
			}
		}
	}
	return visible
}
