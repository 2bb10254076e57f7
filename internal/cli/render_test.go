package cli

import (
	"os"
	"path/filepath"
	"testing"

	tterrors "github.com/matzehuels/tidytree/pkg/errors"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "tree.json", "tree"},
		{"", "dir/tree.layout.json", "dir/tree"},
		{"out.svg", "tree.json", "out"},
		{"out.png", "tree.json", "out"},
		{"out", "tree.json", "out"},
		{"out.v2", "tree.json", "out.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		format   string
		multiple bool
		want     string
	}{
		{"single explicit", "pic.svg", "svg", false, "pic.svg"},
		{"single derived", "", "svg", false, "tree.svg"},
		{"multiple explicit", "pic.svg", "png", true, "pic.png"},
		{"multiple derived", "", "json", true, "tree.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, "tree.graph", tt.format, tt.multiple); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")},
		input:     filepath.Join(dir, "tree.json"),
		output:    filepath.Join(dir, "out"),
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	for name, want := range map[string]string{"out.svg": "<svg/>", "out.json": "{}"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s not written: %v", name, err)
			continue
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", name, data, want)
		}
	}
}

func TestWriteArtifacts_InvalidPath(t *testing.T) {
	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>")},
		formats:   []string{"svg"},
		output:    "bad\x00name.svg",
	})
	if !tterrors.Is(err, tterrors.ErrCodeInvalidPath) {
		t.Errorf("err = %v, want INVALID_PATH", err)
	}
}
