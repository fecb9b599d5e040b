package world

import "math"

// Walls are the horizontal river banks at the player's position.
type Walls struct {
	Left  float64
	Right float64
}

// RiverSegment describes one stretch of the channel.
type RiverSegment struct {
	YStart  float64
	Width   float64
	CenterX float64
}

// Walls returns the static banks of the segment.
func (s RiverSegment) Walls() Walls {
	half := s.Width / 2
	return Walls{Left: s.CenterX - half, Right: s.CenterX + half}
}

// Terrain is a repeating sequence of river segments.
type Terrain struct {
	segments []RiverSegment
}

// NewTerrain wraps an arbitrary segment list.
func NewTerrain(segments []RiverSegment) Terrain {
	return Terrain{segments: append([]RiverSegment(nil), segments...)}
}

// GenerateInitial builds count uniform segments spaced SegmentSpacing apart.
func GenerateInitial(count int) Terrain {
	if count <= 0 {
		count = DefaultSegmentCount
	}
	segments := make([]RiverSegment, count)
	for i := range segments {
		segments[i] = RiverSegment{
			YStart:  float64(i) * SegmentSpacing,
			Width:   SegmentWidth,
			CenterX: SegmentCenterX,
		}
	}
	return Terrain{segments: segments}
}

// Len reports the number of segments.
func (t Terrain) Len() int {
	return len(t.segments)
}

// Segment returns the segment active at scrollOffset.
func (t Terrain) Segment(scrollOffset float64) (RiverSegment, bool) {
	n := len(t.segments)
	if n == 0 {
		return RiverSegment{}, false
	}
	idx := int(math.Floor(scrollOffset/SegmentSpacing)) % n
	if idx < 0 {
		idx += n
	}
	return t.segments[idx], true
}

// WallsAt returns the banks of the active segment. playerY is unused by the
// uniform layout. An empty terrain leaves the whole viewport open.
func (t Terrain) WallsAt(scrollOffset, playerY float64) Walls {
	seg, ok := t.Segment(scrollOffset)
	if !ok {
		return Walls{Left: 0, Right: ViewWidth}
	}
	return seg.Walls()
}
