// Package commands provides CLI command handlers for schemalens.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	yaml "go.yaml.in/yaml/v4"

	schemalens "github.com/schemalens/schemalens"
	"github.com/schemalens/schemalens/parser"
)

// Output format constants
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML, FormatMarkdown:
		return nil
	}
	return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s, %s",
		format, FormatText, FormatJSON, FormatYAML, FormatMarkdown)
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	fmt.Println(string(bytes))
	return nil
}

// RenderDetail renders a single node in the specified format to w.
func RenderDetail(w io.Writer, node any, format string) error {
	var data []byte
	var err error

	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(node, "", "  ")
	case FormatYAML, FormatText:
		data, err = yaml.Marshal(node)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}

	if _, err := fmt.Fprintln(w, strings.TrimRight(string(data), "\n")); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// RenderSummaryTable renders a table of results.
// In quiet mode, headers are omitted and rows are tab-separated for piping.
// In normal mode, a fixed-width table with headers is rendered.
func RenderSummaryTable(w io.Writer, headers []string, rows [][]string, quiet bool) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if !quiet {
		for i, h := range headers {
			if i > 0 {
				_, _ = fmt.Fprint(w, "  ")
			}
			_, _ = fmt.Fprintf(w, "%-*s", widths[i], h)
		}
		_, _ = fmt.Fprintln(w)
	}

	for _, row := range rows {
		for i, cell := range row {
			if quiet {
				if i > 0 {
					_, _ = fmt.Fprint(w, "\t")
				}
				_, _ = fmt.Fprint(w, cell)
			} else {
				if i > 0 {
					_, _ = fmt.Fprint(w, "  ")
				}
				_, _ = fmt.Fprintf(w, "%-*s", widths[i], cell)
			}
		}
		_, _ = fmt.Fprintln(w)
	}
}

// parseDocument parses a schema document from a file path or stdin ("-").
func parseDocument(path string) (*parser.ParseResult, error) {
	p := parser.New()
	if path == StdinFilePath {
		return p.ParseReader(os.Stdin)
	}
	return p.Parse(path)
}

// FormatDocPath returns a display-friendly path for the document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise the path as-is.
func FormatDocPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// OutputDocHeader outputs the common document header to stderr.
func OutputDocHeader(path string, result *parser.ParseResult) {
	Writef(os.Stderr, "schemalens version: %s\n", schemalens.Version())
	Writef(os.Stderr, "Document: %s\n", FormatDocPath(path))
	Writef(os.Stderr, "Format: %s\n", result.SourceFormat)
}

// truncate shortens s to at most maxLen runes, appending "..." when cut.
func truncate(s string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
