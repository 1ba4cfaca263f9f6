package form

import (
	"math"
	"strings"

	"go.uber.org/zap"
)

// Option configures a Controller.
type Option func(*Controller)

// WithDefaultAge overrides the initial age. The value is clamped.
func WithDefaultAge(age float64) Option {
	return func(c *Controller) {
		if !math.IsNaN(age) {
			c.state.Age = ClampAge(age)
		}
	}
}

// WithLogger routes mutation and submit diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSessionID pins the identifier used for log correlation instead of a
// generated UUID.
func WithSessionID(id string) Option {
	return func(c *Controller) {
		if id = strings.TrimSpace(id); id != "" {
			c.sessionID = id
		}
	}
}
