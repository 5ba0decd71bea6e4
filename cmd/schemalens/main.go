package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	schemalens "github.com/schemalens/schemalens"
	"github.com/schemalens/schemalens/cmd/schemalens/commands"
	"github.com/schemalens/schemalens/internal/mcpserver"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("schemalens v%s\n", schemalens.Version())
	case "help", "-h", "--help":
		printUsage()
	case "parse":
		if err := commands.HandleParse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "outline":
		if err := commands.HandleOutline(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "search":
		if err := commands.HandleSearch(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "resolve":
		if err := commands.HandleResolve(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "anchor":
		if err := commands.HandleAnchor(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "walk":
		if err := commands.HandleWalk(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := runMCP(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runMCP() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

func printUsage() {
	fmt.Println(`schemalens - JSON Schema documentation tools

Usage:
  schemalens <command> [flags] [arguments]

Commands:
  parse      Parse a schema document and show its structure summary
  outline    List the properties of a schema node as flat descriptors
  search     Search property names, descriptions, types, and examples
  resolve    Dereference $ref and merge allOf for a schema node
  anchor     Convert between property paths and URL anchors
  walk       Traverse the document (schemas, refs, unsupported)
  mcp        Run the MCP server on stdio
  version    Show version information
  help       Show this help message

Use "schemalens <command> -h" for command-specific flags.

Examples:
  schemalens parse schema.yaml
  schemalens outline --path server.tls schema.yaml
  schemalens search --hit direct timeout schema.yaml
  schemalens resolve --anchor server-tls schema.yaml
  schemalens anchor --path 'sdk.(pattern-0).dependencies'
  schemalens walk refs schema.yaml`)
}
