package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette. Numbers are ANSI 256 colors.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorCmd    = lipgloss.Color("75")
	colorValue  = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleValue   = lipgloss.NewStyle().Foreground(colorValue)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleLabel   = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorCmd)
	styleHit     = lipgloss.NewStyle().Foreground(colorOK)
	styleMiss    = lipgloss.NewStyle().Foreground(colorLabel)
)

// stdout receives every status line. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// tone is the kind of a one-line status message.
type tone int

const (
	toneOK tone = iota
	toneFail
	toneWarn
	toneInfo
)

// marks pairs each tone with its glyph. Warnings also tint the message.
var marks = [...]struct {
	glyph string
	style lipgloss.Style
	tint  bool
}{
	toneOK:   {"✓", lipgloss.NewStyle().Foreground(colorOK), false},
	toneFail: {"✗", lipgloss.NewStyle().Foreground(colorFail), false},
	toneWarn: {"!", lipgloss.NewStyle().Foreground(colorWarn), true},
	toneInfo: {"›", lipgloss.NewStyle().Foreground(colorLabel), false},
}

func status(l tone, format string, args ...any) {
	m := marks[l]
	msg := fmt.Sprintf(format, args...)
	if m.tint {
		msg = m.style.Render(msg)
	}
	fmt.Fprintln(stdout, m.style.Render(m.glyph)+" "+msg)
}

func printSuccess(format string, args ...any) { status(toneOK, format, args...) }
func printError(format string, args ...any)   { status(toneFail, format, args...) }
func printWarning(format string, args ...any) { status(toneWarn, format, args...) }
func printInfo(format string, args ...any)    { status(toneInfo, format, args...) }

// printDetail prints an indented, muted line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+styleMuted.Render(fmt.Sprintf(format, args...)))
}

// printFile announces a written artifact.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+styleMuted.Render("→")+" "+styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleLabel.Render(key)+" "+styleValue.Render(value))
}

// layoutStats is the summary line shown after a layout.
type layoutStats struct {
	placed, depth, discarded int
	cached                   bool
}

// String renders the stats as "3 nodes · depth 1 · 2 dropped · fresh".
func (s layoutStats) String() string {
	fields := []string{
		styleMuted.Render(fmt.Sprintf("%d nodes", s.placed)),
		styleMuted.Render(fmt.Sprintf("depth %d", s.depth)),
	}
	if s.discarded > 0 {
		fields = append(fields, styleMuted.Render(fmt.Sprintf("%d dropped", s.discarded)))
	}
	if s.cached {
		fields = append(fields, styleHit.Render("cached"))
	} else {
		fields = append(fields, styleMiss.Render("fresh"))
	}
	return strings.Join(fields, styleMuted.Render(" · "))
}

func printStats(s layoutStats) {
	fmt.Fprintln(stdout, "  "+s.String())
}

// printNextStep suggests the command that usually follows.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, styleMuted.Render(description+":")+" "+styleCommand.Render(cmd))
}
