// Package pipeline provides the layout → render pipeline for mindtower.
//
// The CLI, the HTTP API and the watch TUI all turn a mind map into an image
// the same way; this package is that shared path, so every entry point
// measures, lays out and renders identically.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: estimate unmeasured node sizes, then position nodes with the
//     radial or the force engine
//  2. Render: produce artifacts (SVG, PNG, DOT, JSON) from the layout
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Engine:  graph.EngineRadial,
//	    Formats: []string{"svg", "json"},
//	}
//	opts.ApplyConfig(cfg)
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindtower/pkg/config"
	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/layout/force"
	"github.com/matzehuels/mindtower/pkg/layout/radial"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and TUI
// =============================================================================

const (
	// DefaultEngine is the layout engine used when none is requested.
	DefaultEngine = graph.EngineRadial

	// DefaultSeed is the default random seed for reproducible force runs.
	DefaultSeed = uint64(42)

	// DefaultMaxTicks bounds batch force runs. The default cooling schedule
	// settles in about 300 ticks.
	DefaultMaxTicks = 1000
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidEngines is the set of supported layout engines.
var ValidEngines = map[string]bool{
	graph.EngineRadial: true,
	graph.EngineForce:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Engine    string           `json:"engine,omitempty"`
	Algorithm radial.Algorithm `json:"algorithm,omitempty"`
	Seed      uint64           `json:"seed,omitempty"`
	MaxTicks  int              `json:"max_ticks,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Graphviz   bool     `json:"graphviz,omitempty"` // render SVG through Graphviz instead of the native renderer
	Directed   bool     `json:"directed,omitempty"`
	Background string   `json:"background,omitempty"`

	// Runtime options (not serialized)
	Radial radial.Config       `json:"-"`
	Force  force.Config        `json:"-"`
	Render config.RenderConfig `json:"-"`
	Logger *log.Logger         `json:"-"`

	// TickLimit caps the force ticks whatever MaxTicks asks for. Zero means
	// no cap.
	TickLimit int `json:"-"`

	// configured tracks whether engine configs were set explicitly.
	configured bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the positioned graph.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Placed     int
	Ticks      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, dot, json)", format)
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

// ValidateEngine checks that a layout engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidEngine, "invalid engine: %q (must be one of: radial, force)", engine)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ApplyConfig takes engine and render settings from cfg. Fields already set
// on the options (Algorithm, Seed, MaxTicks, Background) keep precedence.
func (o *Options) ApplyConfig(cfg config.Config) {
	o.Radial = cfg.Radial
	o.Force = cfg.Force
	o.Render = cfg.Render
	o.configured = true
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if !o.configured {
		o.ApplyConfig(config.Default())
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Algorithm != "" {
		o.Radial.Algorithm = o.Algorithm
	}
	if o.Seed != 0 {
		o.Force.Seed = o.Seed
	} else if o.Force.Seed == 0 {
		o.Force.Seed = DefaultSeed
	}
	if o.MaxTicks != 0 {
		o.Force.MaxTicks = o.MaxTicks
	} else if o.Force.MaxTicks == 0 {
		o.Force.MaxTicks = DefaultMaxTicks
	}
	if o.TickLimit > 0 && (o.Force.MaxTicks <= 0 || o.Force.MaxTicks > o.TickLimit) {
		o.Force.MaxTicks = o.TickLimit
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if o.Engine == graph.EngineForce {
		return o.Force.Validate()
	}
	return o.Radial.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if !o.configured {
		o.ApplyConfig(config.Default())
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Background != "" {
		o.Render.Background = o.Background
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

// ValidateAndSetDefaults prepares options for the full pipeline.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// IsForce returns true if the force engine is selected.
func (o *Options) IsForce() bool {
	return o.Engine == graph.EngineForce
}

func (s Stats) String() string {
	return fmt.Sprintf("%d nodes, %d edges, %d placed, layout %s, render %s",
		s.NodeCount, s.EdgeCount, s.Placed, s.LayoutTime.Round(time.Millisecond), s.RenderTime.Round(time.Millisecond))
}
