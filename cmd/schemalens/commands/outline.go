package commands

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/schemalens/schemalens/anchor"
	"github.com/schemalens/schemalens/outline"
	"github.com/schemalens/schemalens/parser"
)

type outlineFlags struct {
	path      string
	recursive bool
	format    string
	quiet     bool
}

func setupOutlineFlags() (*flag.FlagSet, *outlineFlags) {
	fs := flag.NewFlagSet("outline", flag.ContinueOnError)
	flags := &outlineFlags{}

	fs.StringVar(&flags.path, "path", "", "dot-delimited path to outline (default: document root)")
	fs.BoolVar(&flags.recursive, "recursive", false, "list the full nested property tree")
	fs.StringVar(&flags.format, "format", FormatText, "output format: text, json, yaml, markdown")
	fs.BoolVar(&flags.quiet, "q", false, "suppress headers and decoration")
	fs.BoolVar(&flags.quiet, "quiet", false, "suppress headers and decoration")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: schemalens outline [flags] <file|->\n\n")
		_, _ = fmt.Fprintf(output, "List the properties of a schema node as flat descriptors.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  schemalens outline schema.yaml\n")
		_, _ = fmt.Fprintf(output, "  schemalens outline --path server.tls schema.yaml\n")
		_, _ = fmt.Fprintf(output, "  schemalens outline --recursive --format markdown schema.yaml\n")
	}

	return fs, flags
}

type outlineEntry struct {
	Name        string `json:"name" yaml:"name"`
	Path        string `json:"path" yaml:"path"`
	Anchor      string `json:"anchor" yaml:"anchor"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Required    bool   `json:"required" yaml:"required"`
	Pattern     string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Depth       int    `json:"depth" yaml:"depth"`
}

func outlineEntryFor(prop outline.Property, root *parser.Schema) outlineEntry {
	pathKey := prop.PathKey()
	entry := outlineEntry{
		Name:     prop.Name,
		Path:     pathKey,
		Anchor:   anchor.PathToAnchor(pathKey),
		Required: prop.Required,
		Depth:    prop.Depth,
	}
	resolved := parser.ResolveSchema(prop.Schema, root)
	if resolved == nil {
		resolved = prop.Schema
	}
	if resolved != nil {
		entry.Type = parser.TypeLabel(resolved)
		entry.Description = resolved.Description
	}
	if prop.Schema != nil && prop.Schema.PatternDerived {
		entry.Pattern = prop.Schema.OriginPattern
	}
	return entry
}

// HandleOutline implements the outline command.
func HandleOutline(args []string) error {
	fs, flags := setupOutlineFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("outline command requires exactly one file path")
	}
	if err := ValidateOutputFormat(flags.format); err != nil {
		return err
	}

	docPath := fs.Arg(0)
	result, err := parseDocument(docPath)
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	props, err := outlineProperties(result.Root, flags.path, flags.recursive)
	if err != nil {
		return err
	}

	switch flags.format {
	case FormatJSON, FormatYAML:
		entries := make([]outlineEntry, 0, len(props))
		for _, prop := range props {
			entries = append(entries, outlineEntryFor(prop, result.Root))
		}
		return OutputStructured(entries, flags.format)
	case FormatMarkdown:
		title := ""
		if result.Root != nil {
			title = result.Root.Title
		}
		if title == "" && flags.path != "" {
			title = flags.path
		}
		RenderMarkdownOutline(os.Stdout, title, props, result.Root)
		return nil
	}

	if !flags.quiet {
		OutputDocHeader(docPath, result)
		Writef(os.Stderr, "\n")
	}

	if len(props) == 0 {
		if !flags.quiet {
			Writef(os.Stdout, "No properties found.\n")
		}
		return nil
	}

	headers := []string{"PATH", "TYPE", "REQUIRED", "DESCRIPTION"}
	rows := make([][]string, 0, len(props))
	for _, prop := range props {
		entry := outlineEntryFor(prop, result.Root)
		required := ""
		if entry.Required {
			required = "yes"
		}
		rows = append(rows, []string{
			entry.Path,
			entry.Type,
			required,
			truncate(strings.ReplaceAll(entry.Description, "\n", " "), 60),
		})
	}
	RenderSummaryTable(os.Stdout, headers, rows, flags.quiet)

	if !flags.quiet {
		Writef(os.Stdout, "\nTotal: %d properties\n", len(rows))
	}
	return nil
}

// outlineProperties lists descriptors at the requested path. An empty path
// targets the document root; recursive listings walk the whole subtree.
func outlineProperties(root *parser.Schema, path string, recursive bool) ([]outline.Property, error) {
	if path == "" {
		if recursive {
			return outline.Flatten(root), nil
		}
		return outline.ExtractRoot(root), nil
	}

	node, ok := outline.At(root, path)
	if !ok {
		return nil, fmt.Errorf("no schema node at path '%s'", path)
	}

	segments := strings.Split(path, ".")
	props := outline.Extract(node, segments, outline.PathDepth(segments), root, nil)
	if !recursive {
		return props, nil
	}

	all := make([]outline.Property, 0, len(props))
	stack := outline.ExtendStack(nil, path)
	for _, prop := range props {
		all = append(all, prop)
		all = append(all, descend(prop, root, stack)...)
	}
	return all, nil
}

func descend(prop outline.Property, root *parser.Schema, stack []string) []outline.Property {
	children := outline.Extract(prop.Schema, prop.Path, prop.Depth+1, root, stack)
	childStack := outline.ExtendStack(stack, prop.PathKey())
	out := make([]outline.Property, 0, len(children))
	for _, child := range children {
		out = append(out, child)
		out = append(out, descend(child, root, childStack)...)
	}
	return out
}
