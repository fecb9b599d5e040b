// Package file exchanges documents through polled files on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"river-raid/server/internal/channel"
	"river-raid/server/internal/net/proto"
)

const (
	DefaultInputPath = "/tmp/player_input.json"
	DefaultStatePath = "/tmp/game_state.json"
)

// Reader polls an input document.
type Reader struct {
	path string
}

func NewReader(path string) *Reader {
	if path == "" {
		path = DefaultInputPath
	}
	return &Reader{path: path}
}

// Path returns the polled file.
func (r *Reader) Path() string {
	return r.path
}

// Read loads the current document. A missing or empty file yields
// channel.ErrNoInput.
func (r *Reader) Read() (proto.Input, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return proto.Input{}, channel.ErrNoInput
		}
		return proto.Input{}, fmt.Errorf("read %s: %w", r.path, err)
	}
	in, err := proto.DecodeInput(data)
	if errors.Is(err, proto.ErrEmptyDocument) {
		return proto.Input{}, channel.ErrNoInput
	}
	return in, err
}

func (r *Reader) TryTakeLatest(context.Context) (proto.Input, bool) {
	in, err := r.Read()
	return in, err == nil
}

// Writer publishes snapshots by writing a temp file next to the target and
// renaming it over the target.
type Writer struct {
	path  string
	codec proto.Codec
}

func NewWriter(path string) *Writer {
	if path == "" {
		path = DefaultStatePath
	}
	return &Writer{path: path, codec: proto.JSON}
}

// Path returns the written file.
func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) Publish(_ context.Context, state proto.State) error {
	data, err := w.codec.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return WriteAtomic(w.path, data)
}

// WriteAtomic replaces path with data so readers never observe a partial
// document.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
