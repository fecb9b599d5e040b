package ingest

import (
	"context"
	"testing"

	"river-raid/server/internal/channel"
	"river-raid/server/internal/net/proto"
	"river-raid/server/internal/telemetry"
	"river-raid/server/internal/world"
	"river-raid/server/logging"
)

type recordingTarget struct {
	inputs []world.Input
}

func (r *recordingTarget) SetPendingInput(in world.Input) {
	r.inputs = append(r.inputs, in)
}

func TestPollForwardsLatestInput(t *testing.T) {
	var source channel.LatestInput
	target := &recordingTarget{}
	var metrics logging.Metrics
	task := New(&source, target, 0, telemetry.WrapMetrics(&metrics))

	if task.Poll(context.Background()) {
		t.Fatalf("expected no input from an empty source")
	}
	if len(target.inputs) != 0 {
		t.Fatalf("expected previous pending input to be kept")
	}

	source.Store(proto.Input{DX: -4, Shoot: true})
	if !task.Poll(context.Background()) {
		t.Fatalf("expected input to be accepted")
	}
	if len(target.inputs) != 1 || target.inputs[0].DX != -4 || !target.inputs[0].Shoot {
		t.Fatalf("unexpected forwarded inputs %+v", target.inputs)
	}

	snapshot := metrics.Snapshot()
	if snapshot[telemetry.MetricInputPolls] != 2 || snapshot[telemetry.MetricInputAccepted] != 1 {
		t.Fatalf("unexpected metrics %v", snapshot)
	}
}
