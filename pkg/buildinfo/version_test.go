package buildinfo

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	orig := Version
	Version = "v9.9.9"
	t.Cleanup(func() { Version = orig })

	got := Get()
	if got.Version != "v9.9.9" || got.GoVersion != runtime.Version() {
		t.Errorf("Get() = %+v", got)
	}
	if !strings.Contains(String(), "version: v9.9.9") {
		t.Errorf("String() = %q", String())
	}
	if !strings.HasPrefix(Template(), "{{.Name}} version v9.9.9") {
		t.Errorf("Template() = %q", Template())
	}
}

func TestResolve(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name    string
		version string
		commit  string
		bi      *debug.BuildInfo
		want    Info
	}{
		{
			name: "no embedded info", version: "dev", commit: "none", bi: nil,
			want: Info{Version: "dev", Commit: "none", Date: "unknown"},
		},
		{
			name: "embedded fills defaults", version: "dev", commit: "none", bi: bi,
			want: Info{Version: "v0.3.0", Commit: "abc123", Date: "2026-01-02T03:04:05Z", Modified: true},
		},
		{
			name: "stamped values win", version: "v1.0.0", commit: "deadbeef", bi: bi,
			want: Info{Version: "v1.0.0", Commit: "deadbeef", Date: "2026-01-02T03:04:05Z", Modified: true},
		},
		{
			name: "devel main module", version: "dev", commit: "none",
			bi:   &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want: Info{Version: "dev", Commit: "none", Date: "unknown"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, c := Version, Commit
			Version, Commit = tt.version, tt.commit
			t.Cleanup(func() { Version, Commit = v, c })

			got := resolve(tt.bi)
			tt.want.GoVersion = runtime.Version()
			if got != tt.want {
				t.Errorf("resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
	if got := (Info{Commit: "abc", Modified: true}).commit(); got != "abc-dirty" {
		t.Errorf("commit() = %q", got)
	}
}
