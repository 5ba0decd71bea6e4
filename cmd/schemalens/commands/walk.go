package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/schemalens/schemalens/parser"
	"github.com/schemalens/schemalens/walker"
)

type walkFlags struct {
	format string
	quiet  bool
}

func setupWalkFlags(name, what string) (*flag.FlagSet, *walkFlags) {
	fs := flag.NewFlagSet("walk "+name, flag.ContinueOnError)
	flags := &walkFlags{}

	fs.StringVar(&flags.format, "format", FormatText, "output format: text, json, yaml")
	fs.BoolVar(&flags.quiet, "q", false, "suppress headers and decoration")
	fs.BoolVar(&flags.quiet, "quiet", false, "suppress headers and decoration")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: schemalens walk %s [flags] <file|->\n\n", name)
		_, _ = fmt.Fprintf(output, "%s\n\n", what)
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
	}

	return fs, flags
}

// HandleWalk dispatches the walk subcommands.
func HandleWalk(args []string) error {
	if len(args) == 0 {
		printWalkUsage()
		return fmt.Errorf("walk command requires a subcommand")
	}

	switch args[0] {
	case "schemas":
		return handleWalkSchemas(args[1:])
	case "refs":
		return handleWalkRefs(args[1:])
	case "unsupported":
		return handleWalkUnsupported(args[1:])
	case "help", "-h", "--help":
		printWalkUsage()
		return nil
	default:
		printWalkUsage()
		return fmt.Errorf("unknown walk subcommand '%s'", args[0])
	}
}

func printWalkUsage() {
	Writef(os.Stderr, "Usage: schemalens walk <subcommand> [flags] <file|->\n\n")
	Writef(os.Stderr, "Subcommands:\n")
	Writef(os.Stderr, "  schemas      List every schema node with its location\n")
	Writef(os.Stderr, "  refs         List every $ref with its source location\n")
	Writef(os.Stderr, "  unsupported  List occurrences of unrendered keywords\n")
}

func walkParse(fs *flag.FlagSet, flags *walkFlags, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return "", flag.ErrHelp
		}
		return "", err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return "", fmt.Errorf("walk requires exactly one file path")
	}
	if err := ValidateOutputFormat(flags.format); err != nil {
		return "", err
	}
	if flags.format == FormatMarkdown {
		return "", fmt.Errorf("walk does not support markdown output")
	}
	return fs.Arg(0), nil
}

type walkSchemaEntry struct {
	JSONPath   string `json:"jsonPath" yaml:"jsonPath"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Type       string `json:"type,omitempty" yaml:"type,omitempty"`
	Definition bool   `json:"definition" yaml:"definition"`
}

func handleWalkSchemas(args []string) error {
	fs, flags := setupWalkFlags("schemas", "List every schema node the walker visits, in document order.")
	docPath, err := walkParse(fs, flags, args)
	if err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	result, err := parseDocument(docPath)
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	collected, err := walker.CollectSchemas(result.Root)
	if err != nil {
		return fmt.Errorf("walking document: %w", err)
	}

	entries := make([]walkSchemaEntry, 0, len(collected.All))
	for _, info := range collected.All {
		entries = append(entries, walkSchemaEntry{
			JSONPath:   info.JSONPath,
			Name:       info.Name,
			Type:       parser.TypeLabel(info.Schema),
			Definition: info.IsDefinition,
		})
	}

	if flags.format != FormatText {
		return OutputStructured(entries, flags.format)
	}

	if !flags.quiet {
		OutputDocHeader(docPath, result)
		Writef(os.Stderr, "\n")
	}
	headers := []string{"JSONPATH", "NAME", "TYPE", "DEF"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		def := ""
		if e.Definition {
			def = "yes"
		}
		rows = append(rows, []string{e.JSONPath, e.Name, e.Type, def})
	}
	RenderSummaryTable(os.Stdout, headers, rows, flags.quiet)
	if !flags.quiet {
		Writef(os.Stdout, "\nTotal: %d schemas\n", len(rows))
	}
	return nil
}

type walkRefEntry struct {
	Ref        string `json:"ref" yaml:"ref"`
	SourcePath string `json:"sourcePath" yaml:"sourcePath"`
}

func handleWalkRefs(args []string) error {
	fs, flags := setupWalkFlags("refs", "List every $ref in the document with its source location.")
	docPath, err := walkParse(fs, flags, args)
	if err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	result, err := parseDocument(docPath)
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	collected, err := walker.CollectRefs(result.Root)
	if err != nil {
		return fmt.Errorf("walking document: %w", err)
	}

	entries := make([]walkRefEntry, 0, len(collected.All))
	for _, ref := range collected.All {
		entries = append(entries, walkRefEntry{Ref: ref.Ref, SourcePath: ref.SourcePath})
	}

	if flags.format != FormatText {
		return OutputStructured(entries, flags.format)
	}

	if !flags.quiet {
		OutputDocHeader(docPath, result)
		Writef(os.Stderr, "\n")
	}
	headers := []string{"REF", "SOURCE"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Ref, e.SourcePath})
	}
	RenderSummaryTable(os.Stdout, headers, rows, flags.quiet)
	if !flags.quiet {
		Writef(os.Stdout, "\nTotal: %d references\n", len(rows))
	}
	return nil
}

func handleWalkUnsupported(args []string) error {
	fs, flags := setupWalkFlags("unsupported", "List keywords present in the document that outlining does not render.")
	docPath, err := walkParse(fs, flags, args)
	if err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	result, err := parseDocument(docPath)
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	findings, err := walker.CollectUnsupported(result.Root)
	if err != nil {
		return fmt.Errorf("walking document: %w", err)
	}

	if flags.format != FormatText {
		type findingEntry struct {
			Feature  string `json:"feature" yaml:"feature"`
			JSONPath string `json:"jsonPath" yaml:"jsonPath"`
		}
		entries := make([]findingEntry, 0, len(findings))
		for _, f := range findings {
			entries = append(entries, findingEntry{Feature: f.Feature, JSONPath: f.JSONPath})
		}
		return OutputStructured(entries, flags.format)
	}

	if !flags.quiet {
		OutputDocHeader(docPath, result)
		Writef(os.Stderr, "\n")
	}
	if len(findings) == 0 {
		if !flags.quiet {
			Writef(os.Stdout, "No unsupported features found.\n")
		}
		return nil
	}
	headers := []string{"FEATURE", "JSONPATH"}
	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, []string{f.Feature, f.JSONPath})
	}
	RenderSummaryTable(os.Stdout, headers, rows, flags.quiet)
	if !flags.quiet {
		Writef(os.Stdout, "\nTotal: %d findings\n", len(rows))
	}
	return nil
}
