package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/schemalens/schemalens/parser"
	"github.com/schemalens/schemalens/walker"
)

type parseFlags struct {
	format string
	quiet  bool
}

func setupParseFlags() (*flag.FlagSet, *parseFlags) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags := &parseFlags{}

	fs.StringVar(&flags.format, "format", FormatText, "output format: text, json, yaml")
	fs.BoolVar(&flags.quiet, "q", false, "suppress headers and decoration")
	fs.BoolVar(&flags.quiet, "quiet", false, "suppress headers and decoration")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: schemalens parse [flags] <file|->\n\n")
		_, _ = fmt.Fprintf(output, "Parse a JSON Schema document and display its structure summary.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  schemalens parse schema.yaml\n")
		_, _ = fmt.Fprintf(output, "  schemalens parse --format json schema.json\n")
		_, _ = fmt.Fprintf(output, "  cat schema.yaml | schemalens parse -\n")
	}

	return fs, flags
}

type parseSummary struct {
	Document    string               `json:"document" yaml:"document"`
	Format      string               `json:"format" yaml:"format"`
	Title       string               `json:"title,omitempty" yaml:"title,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	SourceSize  int64                `json:"sourceSize" yaml:"sourceSize"`
	Stats       parser.DocumentStats `json:"stats" yaml:"stats"`
	Warnings    []string             `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Refs        int                  `json:"refs" yaml:"refs"`
}

// HandleParse implements the parse command.
func HandleParse(args []string) error {
	fs, flags := setupParseFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("parse command requires exactly one file path")
	}
	if err := ValidateOutputFormat(flags.format); err != nil {
		return err
	}
	if flags.format == FormatMarkdown {
		return fmt.Errorf("parse does not support markdown output")
	}

	docPath := fs.Arg(0)
	result, err := parseDocument(docPath)
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	refs, err := walker.CollectRefs(result.Root)
	if err != nil {
		return fmt.Errorf("collecting references: %w", err)
	}

	if flags.format != FormatText {
		summary := parseSummary{
			Document:   FormatDocPath(docPath),
			Format:     string(result.SourceFormat),
			SourceSize: result.SourceSize,
			Stats:      result.Stats,
			Warnings:   result.Warnings,
			Refs:       len(refs.All),
		}
		if result.Root != nil {
			summary.Title = result.Root.Title
			summary.Description = result.Root.Description
		}
		return OutputStructured(summary, flags.format)
	}

	if !flags.quiet {
		OutputDocHeader(docPath, result)
		Writef(os.Stderr, "Source Size: %s\n", parser.FormatBytes(result.SourceSize))
		Writef(os.Stderr, "Load Time: %v\n\n", result.LoadTime)
	}

	if result.Root != nil && result.Root.Title != "" {
		Writef(os.Stdout, "Title: %s\n", result.Root.Title)
	}
	if result.Root != nil && result.Root.Description != "" {
		Writef(os.Stdout, "Description: %s\n", truncate(result.Root.Description, 200))
	}
	Writef(os.Stdout, "Schemas: %d\n", result.Stats.SchemaCount)
	Writef(os.Stdout, "Properties: %d\n", result.Stats.PropertyCount)
	Writef(os.Stdout, "Pattern Properties: %d\n", result.Stats.PatternPropertyCount)
	Writef(os.Stdout, "Definitions: %d\n", result.Stats.DefinitionCount)
	Writef(os.Stdout, "References: %d\n", len(refs.All))
	Writef(os.Stdout, "Max Nesting Depth: %d\n", result.Stats.MaxNestingDepth)

	if len(result.Warnings) > 0 {
		Writef(os.Stdout, "\nWarnings (%d):\n", len(result.Warnings))
		for _, warning := range result.Warnings {
			Writef(os.Stdout, "  - %s\n", warning)
		}
	}

	return nil
}
