package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line while a pipeline stage runs. It only draws
// when w is a terminal, so piped output and tests stay clean.
type spinner struct {
	w        io.Writer
	message  string
	interval time.Duration
	animate  bool

	once    sync.Once
	done    chan struct{}
	stopped chan struct{}
	mu      sync.Mutex
	drawn   bool
}

func newSpinner(w io.Writer, message string) *spinner {
	return &spinner{
		w:        w,
		message:  message,
		interval: 80 * time.Millisecond,
		animate:  isTerminal(w),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// start draws frames until stop is called or ctx ends.
func (s *spinner) start(ctx context.Context) {
	go func() {
		defer close(s.stopped)
		if !s.animate {
			select {
			case <-ctx.Done():
			case <-s.done:
			}
			return
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				s.clear()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s", styleSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), styleMuted.Render(s.message))
				s.drawn = true
				s.mu.Unlock()
			}
		}
	}()
}

// stop ends the animation and clears the line. It is safe to call twice.
func (s *spinner) stop() {
	s.once.Do(func() { close(s.done) })
	<-s.stopped
	s.clear()
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.drawn {
		return
	}
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
	s.drawn = false
}

// spin runs fn behind a spinner showing message and reports failMsg when fn
// returns an error.
func (c *CLI) spin(ctx context.Context, message, failMsg string, fn func() error) error {
	s := newSpinner(c.status, message)
	s.start(ctx)
	err := fn()
	s.stop()
	if err != nil {
		printError("%s", failMsg)
	}
	return err
}
