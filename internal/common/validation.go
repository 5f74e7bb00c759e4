package common

import (
	"fmt"
	"slices"

	"resumeforge/internal/formatters"
)

// ValidateOutputFormat validates format against configured supported formats
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil // No restrictions configured
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}

// GetSupportedFormats returns the configured formats, falling back to
// everything the formatter registry can render.
func GetSupportedFormats(configured []string) []string {
	if len(configured) > 0 {
		return configured
	}
	return formatters.GlobalRegistry.GetSupportedFormats()
}
