package devmon

import "log/slog"

// Default size rules: small = max-width 599, medium = 600–960. Large is
// always the fallback and has no rule.
var (
	DefaultSmallRule  = SizeRule{MaxWidth: 599}
	DefaultMediumRule = SizeRule{MinWidth: 600, MaxWidth: 960}
)

// config holds the resolved construction options for a Monitor.
type config struct {
	smallRule  SizeRule
	mediumRule SizeRule
	logger     *slog.Logger
	observer   Observer
}

// defaultConfig returns the configuration used when no options are given.
func defaultConfig() config {
	return config{
		smallRule:  DefaultSmallRule,
		mediumRule: DefaultMediumRule,
		logger:     slog.Default(),
		observer:   nil,
	}
}

// Option configures a Monitor at construction time.
type Option func(*config)

// WithSizeRules replaces both classification rules. Rules are immutable
// after construction. Passing zero rules disables the corresponding bucket:
// a monitor with two zero rules classifies everything as SizeLarge.
func WithSizeRules(small, medium SizeRule) Option {
	return func(c *config) {
		c.smallRule = small
		c.mediumRule = medium
	}
}

// WithLogger sets the structured logger used for listener-fault reporting.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver attaches a telemetry observer. Default: none.
func WithObserver(obs Observer) Option {
	return func(c *config) {
		c.observer = obs
	}
}
