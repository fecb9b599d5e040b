package world

import "testing"

func TestSnapshotFiltersBridgesToVisibleBand(t *testing.T) {
	w := newTestWorld(t, 3)
	if snap := w.Snapshot(); len(snap.Bridges) != 0 {
		t.Fatalf("expected bridge at -1000 to be hidden, got %+v", snap.Bridges)
	}
	w.bridges[0].Y = 100
	snap := w.Snapshot()
	if len(snap.Bridges) != 1 || snap.Bridges[0].ID != 1 || snap.Bridges[0].Destroyed {
		t.Fatalf("expected visible bridge 1, got %+v", snap.Bridges)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	w := newTestWorld(t, 3)
	w.bullet = newBullet(10, 20)
	snap := w.Snapshot()

	snap.Helicopters[0].X = -999
	snap.Bullet.Y = -999
	if w.helicopters[0].X == -999 || w.bullet.Y == -999 {
		t.Fatalf("expected snapshot to share no memory with the world")
	}
	if len(snap.FuelDepots) != 2 {
		t.Fatalf("expected two depots, got %d", len(snap.FuelDepots))
	}
	if snap.Walls.Left != 237.5 || snap.Walls.Right != 562.5 {
		t.Fatalf("unexpected walls %+v", snap.Walls)
	}
	if snap.Respawning() || snap.GameOver() {
		t.Fatalf("expected running snapshot")
	}
}
