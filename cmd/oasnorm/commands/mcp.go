package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasnorm/internal/cliutil"
	"github.com/erraggy/oasnorm/internal/mcpserver"
)

// HandleMCP executes the mcp command: it serves MCP over stdio until the
// client disconnects or the process is interrupted.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasnorm mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the normalize, diff, and presets tools over the Model Context Protocol (stdio).\n")
		cliutil.Writef(fs.Output(), "Defaults come from OASNORM_* environment variables.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
