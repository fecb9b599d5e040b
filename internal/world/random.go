package world

import "math/rand"

func (w *World) randomFloat() float64 {
	if w != nil && w.rng != nil {
		return w.rng.Float64()
	}
	return rand.Float64()
}

// randomInt draws an integer in [min, max] and returns it as a coordinate.
func (w *World) randomInt(min, max int) float64 {
	if max <= min {
		return float64(min)
	}
	span := max - min + 1
	if w != nil && w.rng != nil {
		return float64(min + w.rng.Intn(span))
	}
	return float64(min + rand.Intn(span))
}

func (w *World) randomChoice(a, b float64) float64 {
	if w.randomFloat() < 0.5 {
		return a
	}
	return b
}
