package world

import "testing"

func TestGenerateInitialDefaults(t *testing.T) {
	terrain := GenerateInitial(0)
	if terrain.Len() != DefaultSegmentCount {
		t.Fatalf("expected %d segments, got %d", DefaultSegmentCount, terrain.Len())
	}
	walls := terrain.WallsAt(0, PlayerStartY)
	if walls.Left != 237.5 || walls.Right != 562.5 {
		t.Fatalf("expected walls 237.5/562.5, got %+v", walls)
	}
}

func TestTerrainSegmentWraps(t *testing.T) {
	terrain := NewTerrain([]RiverSegment{
		{YStart: 0, Width: 300, CenterX: 400},
		{YStart: 100, Width: 200, CenterX: 300},
	})
	if seg, _ := terrain.Segment(150); seg.Width != 200 {
		t.Fatalf("expected second segment at offset 150, got %+v", seg)
	}
	if seg, _ := terrain.Segment(250); seg.Width != 300 {
		t.Fatalf("expected wrap to first segment at offset 250, got %+v", seg)
	}
	if seg, _ := terrain.Segment(-50); seg.Width != 200 {
		t.Fatalf("expected negative offset to wrap to last segment, got %+v", seg)
	}
	walls := terrain.WallsAt(199, 0)
	if walls.Left != 200 || walls.Right != 400 {
		t.Fatalf("expected walls 200/400, got %+v", walls)
	}
}

func TestEmptyTerrainIsOpen(t *testing.T) {
	walls := NewTerrain(nil).WallsAt(1234, 0)
	if walls.Left != 0 || walls.Right != ViewWidth {
		t.Fatalf("expected open viewport, got %+v", walls)
	}
}
