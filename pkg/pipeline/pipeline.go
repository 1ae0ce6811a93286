// Package pipeline provides the core load → layout → render pipeline.
//
// This package implements the complete flow from an input tree to rendered
// artifacts, shared by the CLI and any embedding program. Centralizing it
// keeps caching, logging, and validation behavior identical across entry
// points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse and validate the input tree
//  2. Layout: Compute positions for every node
//  3. Render: Generate output in various formats (SVG, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    PeerMargin:        20,
//	    ParentChildMargin: 40,
//	    Formats:           []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, treeData, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tidytree/pkg/cache"
	"github.com/matzehuels/tidytree/pkg/errors"
	"github.com/matzehuels/tidytree/pkg/export"
	"github.com/matzehuels/tidytree/pkg/layout"
	"github.com/matzehuels/tidytree/pkg/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Embedders
// =============================================================================

const (
	// DefaultParentChildMargin is the default vertical gap between a node
	// and its children, in layout units.
	DefaultParentChildMargin = 40.0

	// DefaultPeerMargin is the default horizontal gap between adjacent
	// sibling subtrees, in layout units.
	DefaultPeerMargin = 20.0
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

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for config files and requests.
type Options struct {
	// Layout options
	Layered           bool    `json:"layered,omitempty"`
	ParentChildMargin float64 `json:"parent_child_margin,omitempty"`
	PeerMargin        float64 `json:"peer_margin,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the parsed input tree.
	Tree *tree.Node

	// TreeHash is the content hash of the serialized input tree.
	TreeHash string

	// Layout contains the computed placements.
	Layout export.Layout

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
	Depth      int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation
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

// ValidateAndSetDefaults checks all fields and applies defaults.
// This method is idempotent; calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	lopts := o.LayoutOptions()
	if err := lopts.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills in zero-valued layout and render settings.
func (o *Options) SetLayoutDefaults() {
	if o.ParentChildMargin == 0 {
		o.ParentChildMargin = DefaultParentChildMargin
	}
	if o.PeerMargin == 0 {
		o.PeerMargin = DefaultPeerMargin
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutOptions converts pipeline options to engine options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Layered:           o.Layered,
		ParentChildMargin: o.ParentChildMargin,
		PeerMargin:        o.PeerMargin,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Layered:           o.Layered,
		ParentChildMargin: o.ParentChildMargin,
		PeerMargin:        o.PeerMargin,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}
