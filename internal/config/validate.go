package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateNaming(); err != nil {
		return err
	}
	if err := c.validateBundle(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateLibrary() error {
	if c.Library.Root == "" {
		return errors.New("library.root must be set")
	}
	return nil
}

func (c *Config) validateNaming() error {
	if c.Naming.MaxLength < 16 || c.Naming.MaxLength > 255 {
		return fmt.Errorf("naming.max_length must be between 16 and 255, got %d", c.Naming.MaxLength)
	}
	return nil
}

func (c *Config) validateBundle() error {
	if c.Bundle.MaxSizeMiB <= 0 {
		return errors.New("bundle.max_size_mib must be positive")
	}
	if c.Bundle.WarnSizeMiB < 0 {
		return errors.New("bundle.warn_size_mib must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
