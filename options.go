package frost

import "github.com/TheSnowfield/frost/port"

// Port is the host time-tick source frost drives itself against. It is an
// alias of port.Port so callers can pass a *port.System or any other
// implementation without importing the port package under a different name.
type Port = port.Port

// Option configures an Engine at construction time, following the same
// closure-wrapping-interface shape as the teacher's LoopOption.
type Option interface {
	apply(c *engineConfig)
}

type optionFunc func(c *engineConfig)

func (f optionFunc) apply(c *engineConfig) { f(c) }

type engineConfig struct {
	tlsSize         int
	channelCapacity int
	port            Port
	logger          Logger
	debug           bool
}

func resolveOptions(opts []Option) *engineConfig {
	c := &engineConfig{
		tlsSize:         defaultTLSSize,
		channelCapacity: defaultChannelCapacity,
		logger:          discardLogger{},
	}
	for _, o := range opts {
		o.apply(c)
	}
	if c.port == nil {
		c.port = port.NewSystem()
	}
	return c
}

const (
	defaultTLSSize         = 8
	defaultChannelCapacity = 16
)

// WithTLSSize overrides the per-task TLS table size (default 8, mirroring
// FROST_TLS_SIZE).
func WithTLSSize(n int) Option {
	return optionFunc(func(c *engineConfig) {
		if n > 0 {
			c.tlsSize = n
		}
	})
}

// WithChannelCapacity overrides the per-task inbox ring-buffer capacity
// (default 16, mirroring FROST_CHAN_RINGBUFF_SIZE).
func WithChannelCapacity(n int) Option {
	return optionFunc(func(c *engineConfig) {
		if n > 0 {
			c.channelCapacity = n
		}
	})
}

// WithPort injects the host time-tick source. Required by any embedder that
// isn't content with the wall-clock default.
func WithPort(p Port) Option {
	return optionFunc(func(c *engineConfig) {
		c.port = p
	})
}

// WithLogger attaches a structured Logger. The default discards everything.
func WithLogger(l Logger) Option {
	return optionFunc(func(c *engineConfig) {
		if l != nil {
			c.logger = l
		}
	})
}

// WithDebug enables the per-task fire counter (mirrors the C FROST_DEBUG
// compile-time macro, turned into a runtime option).
func WithDebug(enabled bool) Option {
	return optionFunc(func(c *engineConfig) {
		c.debug = enabled
	})
}
