package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/schemalens/schemalens/anchor"
)

type anchorFlags struct {
	path   string
	anchor string
	format string
	quiet  bool
}

func setupAnchorFlags() (*flag.FlagSet, *anchorFlags) {
	fs := flag.NewFlagSet("anchor", flag.ContinueOnError)
	flags := &anchorFlags{}

	fs.StringVar(&flags.path, "path", "", "dot-delimited path to convert to an anchor")
	fs.StringVar(&flags.anchor, "anchor", "", "dash-delimited anchor to convert to a path")
	fs.StringVar(&flags.format, "format", FormatText, "output format: text, json, yaml")
	fs.BoolVar(&flags.quiet, "q", false, "suppress headers and decoration")
	fs.BoolVar(&flags.quiet, "quiet", false, "suppress headers and decoration")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: schemalens anchor [flags]\n\n")
		_, _ = fmt.Fprintf(output, "Convert between dot-delimited property paths and dash-delimited\n")
		_, _ = fmt.Fprintf(output, "URL anchors. Parenthesized pattern tokens pass through unchanged.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  schemalens anchor --path server.tls.cert\n")
		_, _ = fmt.Fprintf(output, "  schemalens anchor --anchor 'sdk-(pattern-0)-dependencies'\n")
	}

	return fs, flags
}

type anchorResult struct {
	Path        string `json:"path" yaml:"path"`
	Anchor      string `json:"anchor" yaml:"anchor"`
	BranchIndex int    `json:"branchIndex" yaml:"branchIndex"`
}

// HandleAnchor implements the anchor command.
func HandleAnchor(args []string) error {
	fs, flags := setupAnchorFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("anchor command takes no positional arguments")
	}
	if (flags.path == "") == (flags.anchor == "") {
		return fmt.Errorf("provide exactly one of --path or --anchor")
	}
	if err := ValidateOutputFormat(flags.format); err != nil {
		return err
	}
	if flags.format == FormatMarkdown {
		return fmt.Errorf("anchor does not support markdown output")
	}

	res := anchorResult{Path: flags.path, Anchor: flags.anchor}
	if flags.path != "" {
		res.Anchor = anchor.PathToAnchor(flags.path)
	} else {
		res.Path = anchor.AnchorToPath(flags.anchor)
	}
	res.BranchIndex = anchor.BranchIndex(res.Path)

	if flags.format != FormatText {
		return OutputStructured(res, flags.format)
	}

	if flags.quiet {
		if flags.path != "" {
			Writef(os.Stdout, "%s\n", res.Anchor)
		} else {
			Writef(os.Stdout, "%s\n", res.Path)
		}
		return nil
	}

	Writef(os.Stdout, "Path:   %s\n", res.Path)
	Writef(os.Stdout, "Anchor: %s\n", res.Anchor)
	Writef(os.Stdout, "Branch: %d\n", res.BranchIndex)
	return nil
}
