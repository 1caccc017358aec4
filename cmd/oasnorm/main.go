package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasnorm"
	"github.com/erraggy/oasnorm/cmd/oasnorm/commands"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches a command and returns the process exit status.
func run(args []string) int {
	if len(args) < 1 {
		printUsage(os.Stderr)
		return 1
	}

	var err error
	switch command := args[0]; command {
	case "version", "-v", "--version":
		fmt.Printf("oasnorm %s (commit %s)\n", oasnorm.Version(), oasnorm.Commit())
		return 0
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return 0
	case "normalize":
		err = commands.HandleNormalize(args[1:])
	case "diff":
		err = commands.HandleDiff(args[1:])
	case "presets":
		err = commands.HandlePresets(args[1:])
	case "mcp":
		err = commands.HandleMCP(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage(os.Stderr)
		return 1
	}

	if errors.Is(err, commands.ErrChangesFound) {
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, `oasnorm - OpenAPI normalization and schema drift reports

Usage:
  oasnorm <command> [flags] [args]

Commands:
  normalize   Run a document through a normalization pipeline
  diff        Compare two schema files or directories
  presets     List the normalization presets and their stages
  mcp         Serve the tools over the Model Context Protocol (stdio)
  version     Show version information
  help        Show this help message

Run 'oasnorm <command> --help' for more information on a command.

Environment:
  OASNORM_PRESET         Default preset (default: normalize)
  OASNORM_PRUNE_BOUND    Maximum pruning passes (default: 10)
  OASNORM_CONTEXT_LINES  Patch context lines (default: 3)
`)
}
