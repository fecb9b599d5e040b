// Command schema writes the JSON Schema documents for the exchange files.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"river-raid/server/internal/channel/file"
	"river-raid/server/internal/net/proto"
)

func main() {
	outDir := flag.String("out", "schema", "directory that receives the schema files")
	flag.Parse()

	if err := run(*outDir); err != nil {
		log.Fatal(err)
	}
}

func run(outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	documents := map[string]any{
		"input.schema.json": proto.InputSchema(),
		"state.schema.json": proto.StateSchema(),
	}
	for name, schema := range documents {
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		data = append(data, '\n')
		path := filepath.Join(outDir, name)
		if err := file.WriteAtomic(path, data); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Printf("wrote %s", path)
	}
	return nil
}
