package main

import (
	"flag"
	"os"
	"strconv"
)

// Config collects everything the bridge daemon needs to start: where to
// listen, how to reach the modem, and which cellular destination to dial.
type Config struct {
	// BindAddress is the listen address for incoming bridge clients,
	// e.g. "0.0.0.0:7000"
	BindAddress string
	// SerialPort names the modem's serial device, e.g. "/dev/ttyUSB0"
	SerialPort string
	// BaudRate is the serial line speed, e.g. 115200
	BaudRate int
	// LogLevel selects the log verbosity: "debug", "info", "warn" or "error"
	LogLevel string
	// APN is the cellular access point name the PDP context is built on
	APN string
	// RemoteHost is the DNS name the modem resolves and connects to
	RemoteHost string
	// RemotePort is the destination TCP port
	RemotePort int
}

// ConfigOption mutates a Config during loading and may reject it
type ConfigOption func(*Config) error

// LoadConfig builds the configuration by running each option in turn, so
// later sources (env, flags) override earlier ones (defaults)
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// WithDefaults seeds the baseline values; connection parameters (APN and
// destination) have no sensible defaults and stay empty
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BindAddress = "0.0.0.0:7000"
		c.SerialPort = "/dev/ttyUSB0"
		c.BaudRate = 115200
		c.LogLevel = "info"
		return nil
	}
}

// WithEnv overlays values taken from the process environment
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
			c.BindAddress = addr
		}

		if serial := os.Getenv("SERIAL_PORT"); serial != "" {
			c.SerialPort = serial
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if apn := os.Getenv("APN"); apn != "" {
			c.APN = apn
		}

		if host := os.Getenv("REMOTE_HOST"); host != "" {
			c.RemoteHost = host
		}

		if port := os.Getenv("REMOTE_PORT"); port != "" {
			if p, err := strconv.Atoi(port); err == nil {
				c.RemotePort = p
			}
		}

		return nil
	}
}

// WithFlags overlays values from command-line flags. Only flags the user
// actually passed are applied, so flag defaults never mask the environment
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		fSet.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "bind-address":
				c.BindAddress = f.Value.String()
			case "serial-port":
				c.SerialPort = f.Value.String()
			case "baud-rate":
				if b, err := strconv.Atoi(f.Value.String()); err == nil {
					c.BaudRate = b
				}
			case "log-level":
				c.LogLevel = f.Value.String()
			case "apn":
				c.APN = f.Value.String()
			case "remote-host":
				c.RemoteHost = f.Value.String()
			case "remote-port":
				if p, err := strconv.Atoi(f.Value.String()); err == nil {
					c.RemotePort = p
				}
			}
		})
		return nil
	}
}
