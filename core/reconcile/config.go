package reconcile

import (
	"time"

	"github.com/darrenhoch/DualogOutlook/core/store"
)

// Config holds configuration for the reconciliation engine.
type Config struct {
	// MaxDepth bounds folder recursion.
	MaxDepth int `mapstructure:"max_depth" default:"64"`
	// RetryAttempts is the total attempt count for copy operations.
	RetryAttempts int `mapstructure:"retry_attempts" default:"3"`
	// RetryDelaySeconds is the fixed pause between copy attempts.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" default:"2"`
}

// Options converts the configuration into run options.
func (c Config) Options() Options {
	return Options{
		MaxDepth: c.MaxDepth,
		Retry: store.RetryPolicy{
			Attempts: c.RetryAttempts,
			Delay:    time.Duration(c.RetryDelaySeconds) * time.Second,
		},
	}
}
