package config

import (
	"fmt"
	"strings"
)

// OutputFormat selects the report renderer.
type OutputFormat string

const (
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
)

// ParseOutputFormat accepts a format name case-insensitively. "md" is an
// alias for markdown.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: unsupported output format %q (want json, csv or markdown)", ErrInvalidConfig, raw)
	}
}

// Extension is the file extension written for this format, without the dot.
func (f OutputFormat) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

func (f OutputFormat) String() string {
	return string(f)
}
