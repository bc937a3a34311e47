// Package output renders weekplan data for the terminal: tables, compact
// lines, JSON and markdown.
package output

import (
	"os"
	"strings"

	"github.com/twiced-technology-gmbh/weekplan/internal/clierr"
)

// EnvVar names the environment variable holding the default format.
const EnvVar = "WEEKPLAN_OUTPUT"

// Format is an output format.
type Format int

// Formats. FormatAuto lets each command pick: the week view renders
// markdown on a terminal, everything else prints a table.
const (
	FormatAuto Format = iota
	FormatJSON
	FormatTable
	FormatCompact
	FormatMarkdown
)

var formatNames = map[string]Format{
	"auto":     FormatAuto,
	"json":     FormatJSON,
	"table":    FormatTable,
	"compact":  FormatCompact,
	"oneline":  FormatCompact,
	"markdown": FormatMarkdown,
	"md":       FormatMarkdown,
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTable:
		return "table"
	case FormatCompact:
		return "compact"
	case FormatMarkdown:
		return "markdown"
	default:
		return "auto"
	}
}

// Names lists the canonical format names.
func Names() []string {
	return []string{"auto", "json", "table", "compact", "markdown"}
}

// Parse resolves a format name, case-insensitively.
func Parse(name string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	return FormatAuto, clierr.Newf(clierr.InvalidInput, "unknown output format %q (use %s)",
		name, strings.Join(Names(), ", ")).
		WithDetails(map[string]any{"format": name})
}

// Selection is the format requested on the command line.
type Selection struct {
	Name     string // --output value; wins over the switches
	JSON     bool
	Compact  bool
	Table    bool
	Markdown bool
}

// Detect picks the format: --output, then the switches (json, compact,
// table, markdown in that order), then EnvVar. Unknown names in EnvVar are
// ignored; an unknown --output is rejected earlier by Parse.
func Detect(s Selection) Format {
	if s.Name != "" {
		if f, err := Parse(s.Name); err == nil {
			return f
		}
	}
	switch {
	case s.JSON:
		return FormatJSON
	case s.Compact:
		return FormatCompact
	case s.Table:
		return FormatTable
	case s.Markdown:
		return FormatMarkdown
	}
	if f, err := Parse(os.Getenv(EnvVar)); err == nil {
		return f
	}
	return FormatAuto
}
