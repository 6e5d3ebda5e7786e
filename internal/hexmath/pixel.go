package hexmath

import "math"

// AxialToPixel converts axial coordinates to pixel space using a pointy-top
// hex projection with the given hex size (center-to-corner radius).
func AxialToPixel(h HexCoord, size float64) (x, y float64) {
	x = size * (math.Sqrt(3)*float64(h.Q) + math.Sqrt(3)/2*float64(h.R))
	y = size * (3.0 / 2.0 * float64(h.R))
	return x, y
}

// PixelToAxial converts a pixel-space point back to the nearest hex via
// fractional axial coordinates and cube rounding. Round-trips AxialToPixel
// for every integer coordinate.
func PixelToAxial(x, y, size float64) HexCoord {
	q := (math.Sqrt(3)/3*x - 1.0/3.0*y) / size
	r := (2.0 / 3.0 * y) / size
	return cubeRound(q, r)
}

// cubeRound snaps fractional axial coordinates to the nearest valid hex by
// rounding in cube space and correcting the axis with the largest error.
func cubeRound(fq, fr float64) HexCoord {
	fs := -fq - fr

	q := math.Round(fq)
	r := math.Round(fr)
	s := math.Round(fs)

	dq := math.Abs(q - fq)
	dr := math.Abs(r - fr)
	ds := math.Abs(s - fs)

	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	}

	return HexCoord{Q: int(q), R: int(r)}
}
