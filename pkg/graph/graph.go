package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	core "github.com/matzehuels/tidytree/pkg/core/graph"
)

// MarshalGraph converts a core graph to indented JSON bytes.
func MarshalGraph(g *core.Graph) ([]byte, error) {
	return json.MarshalIndent(FromGraph(g), "", "  ")
}

// WriteGraph writes a core graph as indented JSON to w.
func WriteGraph(g *core.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// ReadGraph decodes a JSON graph from r and builds the core graph,
// keeping node and edge order as they appear in the input.
func ReadGraph(r io.Reader) (*core.Graph, error) {
	var gj Graph
	if err := json.NewDecoder(r).Decode(&gj); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	return ToGraph(gj)
}

// WriteGraphFile writes a core graph to path. The file is replaced
// atomically so readers never see a partial graph.
func WriteGraphFile(g *core.Graph, path string) error {
	data, err := MarshalGraph(g)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// ReadGraphFile reads and decodes the graph stored at path.
func ReadGraphFile(path string) (*core.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// writeFile writes data next to path under a temporary name and renames it
// into place.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
