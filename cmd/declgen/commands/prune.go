package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/declgen/doctree"
	"github.com/erraggy/declgen/fixer"
	"github.com/erraggy/declgen/internal/cliutil"
	"github.com/erraggy/declgen/pipeline"
)

// PruneFlags contains flags for the prune command
type PruneFlags struct {
	Product   string
	Format    string
	Verbosity verbosityFlag
}

// SetupPruneFlags creates and configures a FlagSet for the prune command.
// Returns the FlagSet and a PruneFlags struct with bound flag variables.
func SetupPruneFlags() (*flag.FlagSet, *PruneFlags) {
	fs := flag.NewFlagSet("prune", flag.ContinueOnError)
	flags := &PruneFlags{}

	fs.StringVar(&flags.Product, "product", "", "filter the namespace to this product (default: all products)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.Var(&flags.Verbosity, "v", "log verbosity, repeat for more")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: declgen prune [flags] <tree.json>\n\n")
		cliutil.Writef(fs.Output(), "Generate a namespace from a doc tree and list the type references\n")
		cliutil.Writef(fs.Output(), "that name no declaration in it.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  declgen prune highcharts-tree.json\n")
		cliutil.Writef(fs.Output(), "  declgen prune -product highstock -format json highcharts-tree.json\n")
	}

	return fs, flags
}

type pruneReport struct {
	Removed []string    `json:"removed" yaml:"removed"`
	Fixes   []fixer.Fix `json:"fixes"   yaml:"fixes"`
}

// HandlePrune executes the prune command
func HandlePrune(args []string) error {
	return runPrune(args, os.Stdout, os.Stderr)
}

func runPrune(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupPruneFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("prune command requires exactly one doc tree file")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	zl := NewZapAdapter(NewLogger(stderr, int(flags.Verbosity)))
	defer zl.Sync()

	tree, err := doctree.ParseWithOptions(doctree.WithFilePath(fs.Arg(0)), doctree.WithLogger(zl))
	if err != nil {
		return fmt.Errorf("loading doc tree: %w", err)
	}
	ns, err := pipeline.Generate(flags.Product, tree.Root)
	if err != nil {
		return err
	}
	f := fixer.New()
	f.Logger = zl
	result := f.Fix(ns)

	if flags.Format != FormatText {
		return OutputStructured(stdout, pruneReport{Removed: result.Removed, Fixes: result.Fixes}, flags.Format)
	}
	if !result.HasFixes() {
		cliutil.Writef(stdout, "✓ No invalid types\n")
		return nil
	}
	cliutil.Writef(stdout, "Fixes Applied (%d):\n", result.FixCount)
	for _, fix := range result.Fixes {
		cliutil.Writef(stdout, "  - [%s] %s: %s\n", fix.Type, fix.Path, fix.Description)
	}
	cliutil.Writef(stdout, "\nRemoved (%d):\n", len(result.Removed))
	for _, name := range result.Removed {
		cliutil.Writef(stdout, "  - %s\n", name)
	}
	return nil
}
