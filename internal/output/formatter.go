package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Formatter renders a report into bytes. Implementations must not write
// anywhere themselves; WriteFormatted owns the file.
type Formatter interface {
	Format(r *Report) ([]byte, error)
	Name() string
}

// formatters is the registry of built-in formatters keyed by canonical name.
var formatters = registry(
	ConsoleVerboseFormatter{},
	ConsoleFormatter{},
	CSVSummarizer{},
	CSVDetailedExporter{},
	JSONFormatter{},
)

// formatAliases maps accepted synonyms to canonical formatter names.
var formatAliases = map[string]string{
	"console-verbose": "console",
	"verbose":         "console",
	"summary":         "console-lite",
	"csv-detailed":    "detailed-csv",
	"csv-summary":     "csv",
	"json-pretty":     "json",
}

func registry(fs ...Formatter) map[string]Formatter {
	m := make(map[string]Formatter, len(fs))
	for _, f := range fs {
		m[f.Name()] = f
	}
	return m
}

// GetFormatterByName resolves a canonical name or alias, ignoring case and
// surrounding space. It returns nil when nothing matches.
func GetFormatterByName(name string) Formatter {
	return formatters[NormalizeFormatName(name)]
}

// NormalizeFormatName lowers the name and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[n]; ok {
		return canonical
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names in sorted order.
func AvailableFormatterNames() []string {
	return sortedKeys(formatters)
}

// UnsupportedFormatError wraps ErrUnsupportedFormat with the names and aliases
// a caller could have used instead.
func UnsupportedFormatError(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(sortedKeys(formatAliases), ", "))
}

// WriteFormatted renders r and writes it to a timestamped file in dir.
func WriteFormatted(f Formatter, r *Report, dir, ext string) (string, error) {
	data, err := f.Format(r)
	if err != nil {
		return "", fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	if err := ensureDir(dir); err != nil {
		return "", err
	}
	filename := reportPath(dir, ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
