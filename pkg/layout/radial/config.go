package radial

import (
	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/graph"
)

// Algorithm selects the angular layout.
type Algorithm string

const (
	// AlgorithmCluster places leaves evenly around the circle and parents at
	// the mean angle of their children (dendrogram).
	AlgorithmCluster Algorithm = "cluster"
	// AlgorithmTree places subtrees as compactly as possible without
	// overlap (tidy tree).
	AlgorithmTree Algorithm = "tree"
)

// Config holds the radial layout parameters.
type Config struct {
	NodeWidth    float64     `toml:"node_width" json:"node_width"`
	MinSpacing   float64     `toml:"min_spacing" json:"min_spacing"`
	MinLevelStep float64     `toml:"min_level_step" json:"min_level_step"`
	SafetyFactor float64     `toml:"safety_factor" json:"safety_factor"`
	Center       graph.Point `toml:"center" json:"center"`
	Algorithm    Algorithm   `toml:"algorithm" json:"algorithm"`

	// DepthSpread widens cousin spacing on deeper rings. Zero uses the
	// plain sibling/cousin separation.
	DepthSpread float64 `toml:"depth_spread" json:"depth_spread"`

	// Separation overrides the separation derived from DepthSpread.
	Separation SeparationFunc `toml:"-" json:"-"`
}

// DefaultConfig returns the parameters of the mind map viewer.
func DefaultConfig() Config {
	return Config{
		NodeWidth:    150,
		MinSpacing:   80,
		MinLevelStep: 220,
		SafetyFactor: 1,
		Center:       graph.Point{X: 600, Y: 500},
		Algorithm:    AlgorithmCluster,
	}
}

// Validate checks the parameters.
func (c Config) Validate() error {
	switch {
	case c.NodeWidth < 0 || c.MinSpacing < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "radial: node_width and min_spacing must be >= 0")
	case c.MinLevelStep < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "radial: min_level_step must be >= 0, got %g", c.MinLevelStep)
	case c.SafetyFactor < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "radial: safety_factor must be >= 1, got %g", c.SafetyFactor)
	case c.DepthSpread < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "radial: depth_spread must be >= 0, got %g", c.DepthSpread)
	}
	switch c.Algorithm {
	case "", AlgorithmCluster, AlgorithmTree:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "radial: unknown algorithm %q", c.Algorithm)
	}
	return nil
}

func (c Config) separation() SeparationFunc {
	if c.Separation != nil {
		return c.Separation
	}
	if c.DepthSpread > 0 {
		return DepthSeparation(c.DepthSpread)
	}
	return DefaultSeparation
}

// =============================================================================
// Separation
// =============================================================================

// SeparationFunc returns the angular spacing, in sibling units, between two
// adjacent nodes of the angular layout.
type SeparationFunc func(a, b *TreeNode) float64

// DefaultSeparation spaces siblings 1 apart and cousins 2 apart.
func DefaultSeparation(a, b *TreeNode) float64 {
	if a.Parent == b.Parent {
		return 1
	}
	return 2
}

// DepthSeparation scales DefaultSeparation by 1 + spread*depth, so deeper,
// more crowded rings get proportionally more room.
func DepthSeparation(spread float64) SeparationFunc {
	return func(a, b *TreeNode) float64 {
		d := max(a.Depth, b.Depth)
		return DefaultSeparation(a, b) * (1 + spread*float64(d))
	}
}
