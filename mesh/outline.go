package mesh

import (
	"github.com/ungerik/go3d/float64/vec2"
)

// DefaultOutlineScale is the scale applied to TrackOutline by default.
const DefaultOutlineScale = 0.25

// trackProfile is the cross-section of a coaster rail in unscaled units:
// two flanges joined by a raised deck.
var trackProfile = []vec2.T{
	{-4, -2}, {-3, -2}, {-2, -1}, {2, -1}, {3, -2}, {4, -2},
}

// TrackOutline returns the coaster rail profile multiplied by scale.
func TrackOutline(scale float64) []vec2.T {
	out := make([]vec2.T, len(trackProfile))
	for i, p := range trackProfile {
		out[i] = vec2.T{p[0] * scale, p[1] * scale}
	}
	return out
}
