package replication

import (
	"time"

	"river-raid/server/internal/net/proto"
	"river-raid/server/internal/world"
)

func protoState(snap world.Snapshot, now time.Time, scores HighScores) proto.State {
	state := proto.NewState(snap, now)
	if scores == nil {
		return state
	}
	best, ok := scores.Best()
	if snap.Player.Score > best {
		best, ok = snap.Player.Score, true
	}
	if ok {
		state = state.WithHighScore(best)
	}
	return state
}
