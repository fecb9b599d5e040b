package world

import "math"

// Input is the latest control intent. DX is a raw per-tick delta, Speed is a
// tri-state intent (>0, <0, 0).
type Input struct {
	DX        float64
	Speed     float64
	Shoot     bool
	Restart   bool
	Timestamp float64
}

// normalized replaces non-finite numbers with zero.
func (in Input) normalized() Input {
	out := in
	if math.IsNaN(out.DX) || math.IsInf(out.DX, 0) {
		out.DX = 0
	}
	if math.IsNaN(out.Speed) || math.IsInf(out.Speed, 0) {
		out.Speed = 0
	}
	return out
}
