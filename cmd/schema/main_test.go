package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestRunWritesBothSchemas(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := run(dir); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, name := range []string{"input.schema.json", "state.schema.json"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("expected %s to be written: %v", name, err)
		}
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatalf("expected %s to hold JSON: %v", name, err)
		}
	}
}
