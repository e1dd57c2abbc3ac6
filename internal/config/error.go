package config

import (
	"fmt"
	"strings"
)

// Error aggregates configuration validation errors.
type Error struct {
	Path   string   // Config file path
	Errors []string // Validation errors
}

func (e *Error) Error() string {
	if len(e.Errors) == 0 {
		return ""
	}
	parts := []string{fmt.Sprintf("%s: validation failed:", e.Path)}
	for _, err := range e.Errors {
		parts = append(parts, fmt.Sprintf("  - %s", err))
	}
	return strings.Join(parts, "\n")
}
