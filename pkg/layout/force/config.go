package force

import (
	"math"

	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/graph"
)

// Config holds the force parameters. Start from [DefaultConfig] and adjust.
type Config struct {
	// LinkDistance is the target edge length.
	LinkDistance float64 `toml:"link_distance" json:"link_distance"`
	// LinkStrength is the spring stiffness. Zero selects 1/min(deg(u), deg(v))
	// per edge, which keeps hubs from being yanked around.
	LinkStrength float64 `toml:"link_strength" json:"link_strength"`

	// ChargeStrength scales pairwise repulsion (negative) or attraction
	// (positive). Zero disables the charge force.
	ChargeStrength    float64 `toml:"charge_strength" json:"charge_strength"`
	ChargeDistanceMin float64 `toml:"charge_distance_min" json:"charge_distance_min"`

	Center         graph.Point `toml:"center" json:"center"`
	CenterStrength float64     `toml:"center_strength" json:"center_strength"`

	CollideStrength   float64 `toml:"collide_strength" json:"collide_strength"`
	CollideIterations int     `toml:"collide_iterations" json:"collide_iterations"`

	// DefaultRadius is the collision radius of nodes that are neither given a
	// radius nor measured. RadiusPadding is added to radii derived from a
	// measured box.
	DefaultRadius float64 `toml:"default_radius" json:"default_radius"`
	RadiusPadding float64 `toml:"radius_padding" json:"radius_padding"`

	Alpha           float64 `toml:"alpha" json:"alpha"`
	AlphaMin        float64 `toml:"alpha_min" json:"alpha_min"`
	AlphaDecay      float64 `toml:"alpha_decay" json:"alpha_decay"`
	VelocityDecay   float64 `toml:"velocity_decay" json:"velocity_decay"`
	DragAlphaTarget float64 `toml:"drag_alpha_target" json:"drag_alpha_target"`

	// InitialWidth and InitialHeight bound the random starting area of
	// nodes without a prior position.
	InitialWidth  float64 `toml:"initial_width" json:"initial_width"`
	InitialHeight float64 `toml:"initial_height" json:"initial_height"`
	Seed          uint64  `toml:"seed" json:"seed"`

	// MaxTicks caps Run and Start. Zero means no cap.
	MaxTicks int `toml:"max_ticks" json:"max_ticks"`
}

// DefaultConfig returns the parameters used by the diagram viewer.
func DefaultConfig() Config {
	return Config{
		LinkDistance:      180,
		ChargeStrength:    -30000,
		ChargeDistanceMin: 1,
		Center:            graph.Point{X: 600, Y: 500},
		CenterStrength:    1,
		CollideStrength:   1,
		CollideIterations: 2,
		DefaultRadius:     60,
		RadiusPadding:     10,
		Alpha:             1,
		AlphaMin:          0.001,
		AlphaDecay:        1 - math.Pow(0.001, 1.0/300),
		VelocityDecay:     0.4,
		DragAlphaTarget:   0.3,
		InitialWidth:      800,
		InitialHeight:     600,
		Seed:              42,
	}
}

// Validate checks that the parameters describe a simulation that can settle.
func (c Config) Validate() error {
	switch {
	case c.LinkDistance < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "force: link_distance must be >= 0, got %g", c.LinkDistance)
	case c.LinkStrength < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "force: link_strength must be >= 0, got %g", c.LinkStrength)
	case c.ChargeDistanceMin < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "force: charge_distance_min must be >= 0, got %g", c.ChargeDistanceMin)
	case c.CollideIterations < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "force: collide_iterations must be >= 0, got %d", c.CollideIterations)
	case c.DefaultRadius < 0 || c.RadiusPadding < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "force: radii must be >= 0")
	case c.AlphaMin <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "force: alpha_min must be > 0, got %g", c.AlphaMin)
	case c.AlphaDecay <= 0 || c.AlphaDecay > 1:
		return errors.New(errors.ErrCodeInvalidConfig, "force: alpha_decay must be in (0, 1], got %g", c.AlphaDecay)
	case c.VelocityDecay < 0 || c.VelocityDecay > 1:
		return errors.New(errors.ErrCodeInvalidConfig, "force: velocity_decay must be in [0, 1], got %g", c.VelocityDecay)
	case c.InitialWidth <= 0 || c.InitialHeight <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "force: initial area must be positive")
	case c.MaxTicks < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "force: max_ticks must be >= 0, got %d", c.MaxTicks)
	}
	return nil
}
