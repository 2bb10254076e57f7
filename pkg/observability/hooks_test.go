package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type countingCache struct {
	NoopCacheHooks
	hits int
}

func (c *countingCache) OnCacheHit(context.Context, string) { c.hits++ }

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want no-op default", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want no-op default", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want no-op default", HTTP())
	}

	c := &countingCache{}
	SetCacheHooks(c)
	Cache().OnCacheHit(context.Background(), "layout")
	Cache().OnCacheHit(context.Background(), "artifact")
	if c.hits != 2 {
		t.Errorf("hits = %d, want 2", c.hits)
	}

	SetCacheHooks(nil)
	if Cache() != c {
		t.Error("SetCacheHooks(nil) replaced the registered hooks")
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore the no-op cache hooks")
	}
}

func TestLogHooks(t *testing.T) {
	t.Cleanup(Reset)

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	NewLogHooks(logger).Register()

	ctx := context.Background()
	Pipeline().OnLayoutStart(ctx, "r", 4)
	Pipeline().OnLayoutComplete(ctx, "r", 3, time.Millisecond, nil)
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, errors.New("no rsvg"))
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheSet(ctx, "layout", 128)
	HTTP().OnResponse(ctx, "POST", "/v1/layout", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{
		"layout start", "layout done", "placed=3",
		"render failed", "no rsvg",
		"cache miss", "bytes=128",
		"status=200",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooks_QuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnCacheHit(context.Background(), "layout")
	if buf.Len() != 0 {
		t.Errorf("unexpected output at info level: %q", buf.String())
	}
}
