package dnd

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/droptarget/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultStripThickness is the half-width of a sibling insertion strip,
	// measured along the flow axis.
	DefaultStripThickness = 4.0

	// DefaultStripExtension grows insertion strips across the flow axis.
	DefaultStripExtension = 0.0

	// DefaultDedentThreshold is how far left, in pixels, an outline drag must
	// travel to move the target up one level.
	DefaultDedentThreshold = 20.0

	// DefaultMarkerInset shrinks the drawn insertion marker along its strip.
	DefaultMarkerInset = 4.0
)

// Config holds the tunable constants of the targeting engine.
type Config struct {
	StripThickness  float64 `toml:"strip_thickness"`
	StripExtension  float64 `toml:"strip_extension"`
	DedentThreshold float64 `toml:"dedent_threshold"`
	MarkerInset     float64 `toml:"marker_inset"`
}

// DefaultConfig returns the default engine constants.
func DefaultConfig() Config {
	return Config{
		StripThickness:  DefaultStripThickness,
		StripExtension:  DefaultStripExtension,
		DedentThreshold: DefaultDedentThreshold,
		MarkerInset:     DefaultMarkerInset,
	}
}

// Validate rejects negative sizes.
func (c Config) Validate() error {
	switch {
	case c.StripThickness < 0:
		return errors.New(errors.ErrCodeInvalidInput, "strip_thickness must be >= 0, got %g", c.StripThickness)
	case c.StripExtension < 0:
		return errors.New(errors.ErrCodeInvalidInput, "strip_extension must be >= 0, got %g", c.StripExtension)
	case c.DedentThreshold < 0:
		return errors.New(errors.ErrCodeInvalidInput, "dedent_threshold must be >= 0, got %g", c.DedentThreshold)
	case c.MarkerInset < 0:
		return errors.New(errors.ErrCodeInvalidInput, "marker_inset must be >= 0, got %g", c.MarkerInset)
	}
	return nil
}

// Options are shared by the targeter and the drag managers.
type Options struct {
	Config Config
	Logger *log.Logger
}

// WithDefaults fills a zero Config with [DefaultConfig] and a nil Logger
// with the default logger.
func (o Options) WithDefaults() Options {
	if o.Config == (Config{}) {
		o.Config = DefaultConfig()
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}
