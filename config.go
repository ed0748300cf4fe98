package rastercore

// Config bundles the renderer construction parameters of §6
// ("Configuration"): gamma correction applied when converting working
// pixels to 8-bit output, the strip height the frame renderer tiles by, and
// whether independent strips may render on separate goroutines.
type Config struct {
	Gamma          float64
	StripLines     int
	Multithreading bool
}

// DefaultConfig matches §6's documented defaults.
func DefaultConfig() Config {
	return Config{Gamma: 2.2, StripLines: 8, Multithreading: true}
}

// Option configures a Config, following the same construct-then-configure
// shape the teacher's own Agg2D/Attach setup uses, adapted to a small
// functional-options set so zero or more settings can be overridden without
// a sprawling constructor signature.
type Option func(*Config)

// WithGamma overrides the gamma used for the final 8-bit conversion.
func WithGamma(gamma float64) Option {
	return func(c *Config) { c.Gamma = gamma }
}

// WithStripLines overrides the number of scanlines rendered per strip.
func WithStripLines(lines int) Option {
	return func(c *Config) { c.StripLines = lines }
}

// WithMultithreading toggles whether independent strips may render
// concurrently.
func WithMultithreading(enabled bool) Option {
	return func(c *Config) { c.Multithreading = enabled }
}

// NewConfig builds a Config from DefaultConfig with opts applied in order.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
