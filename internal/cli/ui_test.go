package cli

import (
	"strings"
	"testing"
)

func TestLayoutStatsString(t *testing.T) {
	tests := []struct {
		name  string
		stats layoutStats
		want  []string
		not   []string
	}{
		{"fresh", layoutStats{placed: 3, depth: 1}, []string{"3 nodes", "depth 1", "fresh"}, []string{"dropped"}},
		{"cached with drops", layoutStats{placed: 4, depth: 2, discarded: 2, cached: true}, []string{"4 nodes", "2 dropped", "cached"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.stats.String()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("String() = %q, missing %q", got, w)
				}
			}
			for _, n := range tt.not {
				if strings.Contains(got, n) {
					t.Errorf("String() = %q, should not contain %q", got, n)
				}
			}
		})
	}
}

func TestStatusLines(t *testing.T) {
	var buf strings.Builder
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })

	printSuccess("Layout complete")
	printWarning("%d vertices unreached", 2)
	printFile("out.json")
	printKeyValue("address", ":8080")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	for i, want := range []string{"✓", "!", "→", "address"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, missing %q", i, lines[i], want)
		}
	}
	if !strings.Contains(lines[1], "2 vertices unreached") {
		t.Errorf("warning line = %q", lines[1])
	}
}
