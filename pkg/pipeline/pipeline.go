// Package pipeline provides the layout pipeline shared by the CLI and the
// HTTP server.
//
// The pipeline has two stages:
//
//  1. Layout: run the tidy tree engine on a graph from a chosen root
//  2. Render: turn the placed layout into SVG, PNG, PDF or JSON
//
// Both stages are cached through a [cache.Cache]. Layouts are keyed by the
// graph's structure plus the layout options, artifacts by the layout plus
// the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Root:    "main",
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run the stages individually:
//
//	layout, err := runner.GenerateLayout(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tidytree/pkg/cache"
	core "github.com/matzehuels/tidytree/pkg/core/graph"
	"github.com/matzehuels/tidytree/pkg/core/tidy"
	"github.com/matzehuels/tidytree/pkg/errors"
	"github.com/matzehuels/tidytree/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSpacing is the default minimum horizontal distance between
	// nodes on the same level.
	DefaultSpacing = tidy.DefaultMinSpacing

	// DefaultVerticalSpacing is the default distance between levels.
	DefaultVerticalSpacing = tidy.DefaultVerticalSpacing

	// DefaultScale is the default PNG resolution multiplier.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
//
// Zero spacings select the defaults; use a tiny positive value to pack
// nodes tightly.
type Options struct {
	// Layout options
	Root            string  `json:"root"`
	Spacing         float64 `json:"spacing,omitempty"`
	VerticalSpacing float64 `json:"vertical_spacing,omitempty"`
	RootX           float64 `json:"root_x,omitempty"`
	RootY           float64 `json:"root_y,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Labels  bool     `json:"labels,omitempty"`

	// Refresh skips cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the input graph with its reachable vertices relocated.
	Graph *core.Graph

	// GraphHash is the structural hash of the graph used in cache keys.
	GraphHash string

	// Layout is the placed tree.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Placed     int
	Discarded  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Spacing == 0 {
		o.Spacing = DefaultSpacing
	}
	if o.VerticalSpacing == 0 {
		o.VerticalSpacing = DefaultVerticalSpacing
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateVertexID(o.Root); err != nil {
		return err
	}
	if err := errors.ValidateSpacing("spacing", o.Spacing); err != nil {
		return err
	}
	if err := errors.ValidateCoordinate("vertical_spacing", o.VerticalSpacing); err != nil {
		return err
	}
	if err := errors.ValidateCoordinate("root_x", o.RootX); err != nil {
		return err
	}
	return errors.ValidateCoordinate("root_y", o.RootY)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults validates the options for the full pipeline.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// EmbedConfig returns the engine configuration for these options.
func (o *Options) EmbedConfig() tidy.Config {
	return tidy.Config{
		Root:            o.Root,
		MinSpacing:      o.Spacing,
		VerticalSpacing: o.VerticalSpacing,
		RootX:           o.RootX,
		RootY:           o.RootY,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Root:            o.Root,
		Spacing:         o.Spacing,
		VerticalSpacing: o.VerticalSpacing,
		RootX:           o.RootX,
		RootY:           o.RootY,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Scale only matters for PNG, so other formats share entries across scales.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Labels: o.Labels}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
