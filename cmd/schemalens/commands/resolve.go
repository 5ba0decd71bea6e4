package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/schemalens/schemalens/anchor"
	"github.com/schemalens/schemalens/outline"
	"github.com/schemalens/schemalens/parser"
)

type resolveFlags struct {
	path   string
	anchor string
	format string
	quiet  bool
}

func setupResolveFlags() (*flag.FlagSet, *resolveFlags) {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	flags := &resolveFlags{}

	fs.StringVar(&flags.path, "path", "", "dot-delimited path of the node to resolve")
	fs.StringVar(&flags.anchor, "anchor", "", "dash-delimited anchor of the node to resolve")
	fs.StringVar(&flags.format, "format", FormatYAML, "output format: yaml, json")
	fs.BoolVar(&flags.quiet, "q", false, "suppress headers and decoration")
	fs.BoolVar(&flags.quiet, "quiet", false, "suppress headers and decoration")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: schemalens resolve [flags] <file|->\n\n")
		_, _ = fmt.Fprintf(output, "Resolve a schema node: dereference $ref and merge allOf, then\n")
		_, _ = fmt.Fprintf(output, "print the expanded schema. Target the node with --path or --anchor.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  schemalens resolve --path server.tls schema.yaml\n")
		_, _ = fmt.Fprintf(output, "  schemalens resolve --anchor server-tls --format json schema.yaml\n")
	}

	return fs, flags
}

// HandleResolve implements the resolve command.
func HandleResolve(args []string) error {
	fs, flags := setupResolveFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("resolve command requires exactly one file path")
	}
	if flags.path != "" && flags.anchor != "" {
		return fmt.Errorf("provide --path or --anchor, not both")
	}
	switch flags.format {
	case FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", flags.format, FormatYAML, FormatJSON)
	}

	path := flags.path
	if flags.anchor != "" {
		path = anchor.AnchorToPath(flags.anchor)
	}

	docPath := fs.Arg(0)
	result, err := parseDocument(docPath)
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	node, ok := outline.At(result.Root, path)
	if !ok {
		return fmt.Errorf("no schema node at path '%s'", path)
	}

	resolved, diags := parser.ResolveSchemaDetail(node, result.Root)
	if resolved == nil {
		resolved = node
	}

	if !flags.quiet {
		OutputDocHeader(docPath, result)
		target := path
		if target == "" {
			target = "(root)"
		}
		Writef(os.Stderr, "Node: %s\n", target)
		if label := parser.TypeLabel(resolved); label != "" {
			Writef(os.Stderr, "Type: %s\n", label)
		}
		for _, feature := range parser.UnsupportedFeatures(resolved) {
			Writef(os.Stderr, "Unsupported feature: %s\n", feature)
		}
		for _, d := range diags {
			Writef(os.Stderr, "Warning: %s: %s\n", d.Ref, d.Message)
		}
		Writef(os.Stderr, "\n")
	}

	return RenderDetail(os.Stdout, resolved, flags.format)
}
