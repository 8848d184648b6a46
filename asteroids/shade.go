package asteroids

// Shade is the per-asteroid rule: the new uniform scale, and the color to
// write if the asteroid has a color at all. Predicted asteroids get
// tints.Predicted, others tints.Neutral. write is false when hasColor is.
func Shade(pulse, baseScale float64, hasColor, predicted bool, tints Tints) (scale float32, color Color, write bool) {
	scale = float32(baseScale * pulse)
	if !hasColor {
		return scale, Color{}, false
	}
	if predicted {
		return scale, tints.Predicted, true
	}
	return scale, tints.Neutral, true
}
