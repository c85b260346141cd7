package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the greeter service
type Config struct {
	// Server configuration
	Host     string `env:"HOST" envDefault:"0.0.0.0"`
	Port     int    `env:"PORT" envDefault:"5000"`
	GRPCPort int    `env:"GRPC_PORT" envDefault:"0"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	MetricsEnabled  bool          `env:"METRICS_ENABLED" envDefault:"true"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from the environment and then applies
// command-line flag overrides from args.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.parseFlags(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// parseFlags overrides fields with any flags present in args. Environment
// values act as the flag defaults.
func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("greeter", flag.ContinueOnError)
	fs.StringVar(&c.Host, "host", c.Host, "HTTP bind host (env HOST)")
	fs.IntVar(&c.Port, "port", c.Port, "HTTP bind port (env PORT)")
	fs.IntVar(&c.GRPCPort, "grpc-port", c.GRPCPort, "gRPC health port, 0 disables (env GRPC_PORT)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error (env LOG_LEVEL)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}

	// Validate server ports
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.Port)
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPCPort)
	}
	if c.GRPCPort == c.Port {
		return fmt.Errorf("gRPC port must differ from HTTP port %d", c.Port)
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// HTTPAddr returns the HTTP server address
func (c *Config) HTTPAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// GRPCAddr returns the gRPC server address, or "" when gRPC is disabled
func (c *Config) GRPCAddr() string {
	if c.GRPCPort == 0 {
		return ""
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(c.GRPCPort))
}
