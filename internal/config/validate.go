package config

import (
	"fmt"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.Database.MaxConnections < 0 {
		errs = append(errs, fmt.Sprintf("database.max_connections: must be positive, got %d", c.Database.MaxConnections))
	}

	if c.Scanner.AutoScan && c.Scanner.ScanInterval.Duration < 0 {
		errs = append(errs, "scanner.scan_interval: must be positive when auto_scan is enabled")
	}

	return errs
}
