package commands

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/schemalens/schemalens/search"
)

type searchFlags struct {
	hit    string
	format string
	quiet  bool
}

func setupSearchFlags() (*flag.FlagSet, *searchFlags) {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	flags := &searchFlags{}

	fs.StringVar(&flags.hit, "hit", "", "filter by hit kind: direct, indirect, both")
	fs.StringVar(&flags.format, "format", FormatText, "output format: text, json, yaml")
	fs.BoolVar(&flags.quiet, "q", false, "suppress headers and decoration")
	fs.BoolVar(&flags.quiet, "quiet", false, "suppress headers and decoration")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: schemalens search [flags] <query> <file|->\n\n")
		_, _ = fmt.Fprintf(output, "Search property names, descriptions, types, and examples.\n")
		_, _ = fmt.Fprintf(output, "Direct hits match the property itself; indirect hits match\n")
		_, _ = fmt.Fprintf(output, "somewhere beneath it.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  schemalens search timeout schema.yaml\n")
		_, _ = fmt.Fprintf(output, "  schemalens search --hit direct tls schema.yaml\n")
	}

	return fs, flags
}

type searchEntry struct {
	outlineEntry `yaml:",inline"`
	Hit          string `json:"hit" yaml:"hit"`
}

// HandleSearch implements the search command.
func HandleSearch(args []string) error {
	fs, flags := setupSearchFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("search command requires a query and a file path")
	}
	if err := ValidateOutputFormat(flags.format); err != nil {
		return err
	}
	if flags.format == FormatMarkdown {
		return fmt.Errorf("search does not support markdown output")
	}
	switch flags.hit {
	case "", "direct", "indirect", "both":
	default:
		return fmt.Errorf("invalid hit filter '%s'. Valid filters: direct, indirect, both", flags.hit)
	}

	query := fs.Arg(0)
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search query must not be empty")
	}

	docPath := fs.Arg(1)
	result, err := parseDocument(docPath)
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	matches := search.Search(result.Root, query)
	if flags.hit != "" {
		filtered := matches[:0]
		for _, m := range matches {
			if m.HitLabel == flags.hit {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}

	if flags.format != FormatText {
		entries := make([]searchEntry, 0, len(matches))
		for _, m := range matches {
			entries = append(entries, searchEntry{
				outlineEntry: outlineEntryFor(m.Property, result.Root),
				Hit:          m.HitLabel,
			})
		}
		return OutputStructured(entries, flags.format)
	}

	if !flags.quiet {
		OutputDocHeader(docPath, result)
		Writef(os.Stderr, "Query: %s\n\n", query)
	}

	if len(matches) == 0 {
		if !flags.quiet {
			Writef(os.Stdout, "No matches found.\n")
		}
		return nil
	}

	headers := []string{"PATH", "HIT", "TYPE", "DESCRIPTION"}
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		entry := outlineEntryFor(m.Property, result.Root)
		rows = append(rows, []string{
			entry.Path,
			m.HitLabel,
			entry.Type,
			truncate(strings.ReplaceAll(entry.Description, "\n", " "), 60),
		})
	}
	RenderSummaryTable(os.Stdout, headers, rows, flags.quiet)

	if !flags.quiet {
		Writef(os.Stdout, "\nTotal: %d matches\n", len(rows))
	}
	return nil
}
