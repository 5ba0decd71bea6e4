package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/schemalens/schemalens/lenserrors"
)

// MaxFileSize is the default maximum size (in bytes) allowed for schema
// documents. This prevents resource exhaustion from loading arbitrarily
// large files. 10MB is ample for any realistic schema.
const MaxFileSize = 10 * 1024 * 1024

// Parser handles JSON Schema document parsing
type Parser struct {
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger

	// MaxFileSize is the maximum document size in bytes.
	// Zero means use the package default (10MB).
	MaxFileSize int64
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return MaxFileSize
}

// SourceFormat represents the format of the source schema document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains the parsed schema document and metadata.
//
// Callers should treat the Root schema as read-only after parsing: the
// resolution engine never mutates it and produces new derived nodes instead,
// so a single ParseResult can safely back any number of concurrent
// extraction or search calls.
type ParseResult struct {
	// SourcePath is the document's input source path that it was read from.
	// Note: if the source was not a file path, this will be set to the name
	// of the entry point method and end in '.yaml' or '.json' based on the
	// detected format
	SourcePath string
	// SourceFormat is the format of the source document (JSON or YAML)
	SourceFormat SourceFormat
	// Root is the document root schema. All root-relative $ref pointers
	// resolve against it.
	Root *Schema
	// Warnings contains non-fatal issues, such as unsupported keywords
	// encountered in the document
	Warnings []string
	// LoadTime is the time taken to load and decode the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats DocumentStats
}

// Parse parses a JSON Schema document from a file path.
// Both YAML and JSON documents are accepted.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &lenserrors.ParseError{Path: path, Message: "failed to read file", Cause: err}
	}
	if int64(len(data)) > p.maxFileSize() {
		return nil, &lenserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        p.maxFileSize(),
			Actual:       int64(len(data)),
			Message:      path,
		}
	}

	format := detectFormatFromPath(path)
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}

	result, err := p.parseBytes(data, path, format)
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(start)
	return result, nil
}

// ParseBytes parses a JSON Schema document from a byte slice.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	start := time.Now()

	if int64(len(data)) > p.maxFileSize() {
		return nil, &lenserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        p.maxFileSize(),
			Actual:       int64(len(data)),
		}
	}

	format := detectFormatFromContent(data)
	sourcePath := "ParseBytes." + formatExt(format)

	result, err := p.parseBytes(data, sourcePath, format)
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(start)
	return result, nil
}

// ParseReader parses a JSON Schema document from an io.Reader.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	start := time.Now()

	data, err := io.ReadAll(io.LimitReader(r, p.maxFileSize()+1))
	if err != nil {
		return nil, &lenserrors.ParseError{Message: "failed to read input", Cause: err}
	}
	if int64(len(data)) > p.maxFileSize() {
		return nil, &lenserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        p.maxFileSize(),
			Actual:       int64(len(data)),
		}
	}

	format := detectFormatFromContent(data)
	sourcePath := "ParseReader." + formatExt(format)

	result, err := p.parseBytes(data, sourcePath, format)
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(start)
	return result, nil
}

// parseBytes decodes the document and assembles the result.
// The YAML decoder accepts JSON input as well, so a single decode path
// serves both formats while preserving mapping key order.
func (p *Parser) parseBytes(data []byte, sourcePath string, format SourceFormat) (*ParseResult, error) {
	logger := p.log()
	logger.Debug("parsing schema document", "source", sourcePath, "format", format, "size", len(data))

	var root Schema
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &lenserrors.ParseError{Path: sourcePath, Message: "invalid schema document", Cause: err}
	}

	stats, warnings := collectStats(&root)
	logger.Debug("parsed schema document", "source", sourcePath, "stats", stats.String(), "warnings", len(warnings))

	return &ParseResult{
		SourcePath:   sourcePath,
		SourceFormat: format,
		Root:         &root,
		Warnings:     warnings,
		SourceSize:   int64(len(data)),
		Stats:        stats,
	}, nil
}

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes
// JSON typically starts with '{' or '[', while YAML does not
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

func formatExt(format SourceFormat) string {
	if format == SourceFormatJSON {
		return "json"
	}
	return "yaml"
}
