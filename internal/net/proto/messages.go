package proto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"river-raid/server/internal/world"
)

// Input is the control document written by the client.
type Input struct {
	DX        float64 `json:"dx"`
	Speed     float64 `json:"speed"`
	Shoot     bool    `json:"shoot"`
	Restart   bool    `json:"restart"`
	Timestamp float64 `json:"timestamp"`
}

// World converts the document into simulation input.
func (in Input) World() world.Input {
	return world.Input{
		DX:        in.DX,
		Speed:     in.Speed,
		Shoot:     in.Shoot,
		Restart:   in.Restart,
		Timestamp: in.Timestamp,
	}
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Player struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Fuel  float64 `json:"fuel"`
	Lives int     `json:"lives"`
	Score int     `json:"score"`
}

type Bridge struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Destroyed bool    `json:"destroyed"`
	ID        int     `json:"id"`
}

type Walls struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// State is the snapshot document published to viewers.
type State struct {
	Respawning  bool    `json:"respawning"`
	GameOver    bool    `json:"game_over"`
	ScrollSpeed float64 `json:"scroll_speed"`
	Timestamp   float64 `json:"timestamp"`
	Player      Player  `json:"player"`
	Bullet      *Point  `json:"bullet"`
	Helicopters []Point `json:"helicopters"`
	Tankers     []Point `json:"tankers"`
	Jets        []Point `json:"jets"`
	FuelDepots  []Point `json:"fuel_depots"`
	// Bridges only lists bridges inside the visible band.
	Bridges    []Bridge `json:"bridges"`
	RiverWalls Walls    `json:"river_walls"`

	Phase     string `json:"phase,omitempty"`
	HighScore *int   `json:"high_score,omitempty"`
	Tick      uint64 `json:"tick,omitempty"`
	RunID     string `json:"run_id,omitempty"`
}

// NewState renders a world snapshot taken at now.
func NewState(snap world.Snapshot, now time.Time) State {
	state := State{
		Respawning:  snap.Respawning(),
		GameOver:    snap.GameOver(),
		ScrollSpeed: snap.ScrollSpeed,
		Timestamp:   unixSeconds(now),
		Player: Player{
			X:     snap.Player.X,
			Y:     snap.Player.Y,
			Fuel:  snap.Player.Fuel,
			Lives: snap.Player.Lives,
			Score: snap.Player.Score,
		},
		Helicopters: points(snap.Helicopters),
		Tankers:     points(snap.Tankers),
		Jets:        points(snap.Jets),
		FuelDepots:  points(snap.FuelDepots),
		Bridges:     make([]Bridge, 0, len(snap.Bridges)),
		RiverWalls:  Walls{Left: snap.Walls.Left, Right: snap.Walls.Right},
		Phase:       snap.Phase.String(),
		Tick:        snap.Tick,
		RunID:       snap.RunID,
	}
	if snap.Bullet != nil {
		state.Bullet = &Point{X: snap.Bullet.X, Y: snap.Bullet.Y}
	}
	for _, b := range snap.Bridges {
		state.Bridges = append(state.Bridges, Bridge{X: b.X, Y: b.Y, Destroyed: b.Destroyed, ID: b.ID})
	}
	return state
}

// WithHighScore returns a copy carrying the best recorded score.
func (s State) WithHighScore(score int) State {
	s.HighScore = &score
	return s
}

func points(src []world.Point) []Point {
	out := make([]Point, 0, len(src))
	for _, p := range src {
		out = append(out, Point{X: p.X, Y: p.Y})
	}
	return out
}

// ErrEmptyDocument is returned when a payload carries no bytes.
var ErrEmptyDocument = errors.New("empty document")

// DecodeInput parses a JSON input document. Only objects are accepted; a
// bare null counts as an empty document.
func DecodeInput(data []byte) (Input, error) {
	var in *Input
	if len(bytes.TrimSpace(data)) == 0 {
		return Input{}, ErrEmptyDocument
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return Input{}, fmt.Errorf("decode input: %w", err)
	}
	if in == nil {
		return Input{}, ErrEmptyDocument
	}
	return *in, nil
}

// Codec serialises wire documents.
type Codec interface {
	Name() string
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// JSON is the default text codec.
var JSON Codec = jsonCodec{}

// Msgpack is the binary codec. Field names follow the json tags so both
// encodings carry the same keys.
var Msgpack Codec = msgpackCodec{}

// CodecByName resolves a codec. An empty name selects JSON.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", CodecJSON:
		return JSON, nil
	case CodecMsgpack:
		return Msgpack, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string        { return CodecJSON }
func (jsonCodec) ContentType() string { return "application/json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string        { return CodecMsgpack }
func (msgpackCodec) ContentType() string { return "application/msgpack" }

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

func unixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}
