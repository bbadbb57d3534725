package modem

import (
	"log/slog"

	"i4.energy/across/celllink/ring"
)

// Config carries everything a Device needs at construction time.
type Config struct {
	// Port is the byte pipe to the modem. Required.
	Port Port
	// Profile selects the modem model. Defaults to SIM800.
	Profile Profile
	// ReadBuffer and WriteBuffer are the data rings the application reads
	// from and writes to. When nil, rings of BufferSize bytes are created.
	ReadBuffer  *ring.Buffer
	WriteBuffer *ring.Buffer
	// BufferSize is the capacity used for default-created rings.
	BufferSize int
	// Logger receives debug-level state transition events. When nil the
	// engine does not log at all.
	Logger *slog.Logger
}

// minBufferSize keeps the receive path live: a pull request must be able
// to stage at least a handful of bytes or the engine would spin forever
// asking for zero.
const minBufferSize = 16

func (c *Config) validate() error {
	if c.Port == nil {
		return ErrNoPort
	}
	if c.ReadBuffer != nil && c.ReadBuffer.Capacity() < minBufferSize {
		return ErrBufferTooSmall
	}
	if c.WriteBuffer != nil && c.WriteBuffer.Capacity() < minBufferSize {
		return ErrBufferTooSmall
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Profile.CloseToken == "" {
		c.Profile = SIM800()
	}
	if c.BufferSize < minBufferSize {
		c.BufferSize = 128
	}
	if c.ReadBuffer == nil {
		c.ReadBuffer = ring.New(c.BufferSize)
	}
	if c.WriteBuffer == nil {
		c.WriteBuffer = ring.New(c.BufferSize)
	}
}

// ConfigBuilder assembles a Config fluently.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder returns a builder with empty configuration.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// WithPort sets the byte pipe to the modem.
func (b *ConfigBuilder) WithPort(p Port) *ConfigBuilder {
	b.config.Port = p
	return b
}

// WithProfile selects the modem model.
func (b *ConfigBuilder) WithProfile(p Profile) *ConfigBuilder {
	b.config.Profile = p
	return b
}

// WithReadBuffer supplies the inbound data ring.
func (b *ConfigBuilder) WithReadBuffer(r *ring.Buffer) *ConfigBuilder {
	b.config.ReadBuffer = r
	return b
}

// WithWriteBuffer supplies the outbound data ring.
func (b *ConfigBuilder) WithWriteBuffer(r *ring.Buffer) *ConfigBuilder {
	b.config.WriteBuffer = r
	return b
}

// WithBufferSize sets the capacity for default-created rings.
func (b *ConfigBuilder) WithBufferSize(n int) *ConfigBuilder {
	b.config.BufferSize = n
	return b
}

// WithLogger attaches a debug logger.
func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.Logger = l
	return b
}

// Build validates the configuration and fills in defaults.
func (b *ConfigBuilder) Build() (Config, error) {
	if err := b.config.validate(); err != nil {
		return Config{}, err
	}
	b.config.setDefaults()
	return b.config, nil
}
