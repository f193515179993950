package squeeze

// Config holds the configuration shared by all codecs.
type Config struct {
	// FixedCodeWidth pins LZW codes at 12 bits instead of growing them
	// from 9 bits.  The encoder and decoder must agree on this setting.
	FixedCodeWidth bool

	// Listeners receive progress events.
	Listeners []Listener
}

// Option is a functional option for configuring a codec.
type Option func(*Config)

// WithFixedCodeWidth selects fixed 12-bit LZW codes.  Other codecs ignore it.
func WithFixedCodeWidth(fixed bool) Option {
	return func(c *Config) {
		c.FixedCodeWidth = fixed
	}
}

// WithListener adds a Listener for progress events.  Nil listeners are
// ignored.
func WithListener(l Listener) Option {
	return func(c *Config) {
		if l != nil {
			c.Listeners = append(c.Listeners, l)
		}
	}
}

func buildConfig(opts []Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
