package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/declgen/internal/cliutil"
	"github.com/erraggy/declgen/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command. The server takes
// its settings from DECLGEN_* environment variables, so there are no flags.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: declgen mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the generate, diff and prune tools over MCP on stdin/stdout.\n\n")
		cliutil.Writef(fs.Output(), "Environment:\n")
		cliutil.Writef(fs.Output(), "  DECLGEN_CONFIG             products YAML used by the generate tool\n")
		cliutil.Writef(fs.Output(), "  DECLGEN_CACHE_ENABLED      cache parsed doc trees (default true)\n")
		cliutil.Writef(fs.Output(), "  DECLGEN_CACHE_MAX_SIZE     maximum cached doc trees (default 10)\n")
		cliutil.Writef(fs.Output(), "  DECLGEN_MAX_INLINE_SIZE    maximum inline content in bytes (default 10MiB)\n")
	}
	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
