package cli

import (
	"errors"
	"fmt"
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("SEABATTLE_SERVER", "http://localhost:8080"),
		Output:    getEnvOrDefault("SEABATTLE_OUTPUT", "text"),
		Verbose:   false,
	}
}

// Validate rejects settings no command can work with
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("output must be text or json, got %q", c.Output)
	}
	if c.ServerURL == "" {
		return errors.New("server URL is empty")
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
