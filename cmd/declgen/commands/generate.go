package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/erraggy/declgen"
	"github.com/erraggy/declgen/doctree"
	"github.com/erraggy/declgen/internal/cliutil"
	"github.com/erraggy/declgen/pipeline"
	"github.com/erraggy/declgen/renderer"
)

// ErrDrift is returned by a generate check when files on disk differ from
// the generated declarations.
var ErrDrift = errors.New("generated declarations differ from files on disk")

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Config    string
	Namespace string
	Options   string
	Out       string
	Check     bool
	Quiet     bool
	Verbosity verbosityFlag
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Config, "config", "", "products YAML file (default: the single product highcharts)")
	fs.StringVar(&flags.Namespace, "namespace", "", "namespace doc tree: an object of module key to doc tree (required)")
	fs.StringVar(&flags.Options, "options", "", "options doc tree")
	fs.StringVar(&flags.Out, "out", ".", "output directory")
	fs.BoolVar(&flags.Check, "check", false, "compare with the files in the output directory instead of writing them")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no summary output")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no summary output")
	fs.Var(&flags.Verbosity, "v", "log verbosity, repeat for more (-v info, -v -v debug)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: declgen generate [flags] -namespace <tree.json>\n\n")
		cliutil.Writef(fs.Output(), "Generate TypeScript declaration files for every configured product.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  declgen generate -namespace tree-namespace.json -options tree.json -out build\n")
		cliutil.Writef(fs.Output(), "  declgen generate -config products.yaml -namespace tree-namespace.json -out build\n")
		cliutil.Writef(fs.Output(), "  declgen generate -check -namespace tree-namespace.json -options tree.json -out build\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Declarations written (or up to date with -check)\n")
		cliutil.Writef(fs.Output(), "  1    Generation failed, or files differ with -check\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	return runGenerate(context.Background(), args, os.Stdout, os.Stderr)
}

func runGenerate(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupGenerateFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if flags.Namespace == "" {
		fs.Usage()
		return fmt.Errorf("generate command requires -namespace")
	}

	zl := NewZapAdapter(NewLogger(stderr, int(flags.Verbosity)))
	defer zl.Sync()

	cfg := pipeline.DefaultConfig()
	if flags.Config != "" {
		var err error
		if cfg, err = pipeline.LoadConfig(flags.Config); err != nil {
			return err
		}
	}

	modules, err := doctree.ParseWithOptions(
		doctree.WithFilePath(flags.Namespace),
		doctree.WithModuleMap(true),
		doctree.WithLogger(zl),
	)
	if err != nil {
		return fmt.Errorf("loading namespace tree: %w", err)
	}
	var options *doctree.Node
	if flags.Options != "" {
		res, err := doctree.ParseWithOptions(doctree.WithFilePath(flags.Options), doctree.WithLogger(zl))
		if err != nil {
			return fmt.Errorf("loading options tree: %w", err)
		}
		options = res.Root
	}

	result, err := pipeline.Run(ctx, cfg, &modules.Modules, options, pipeline.WithLogger(zl))
	if err != nil {
		return err
	}
	files := result.Files()

	if flags.Check {
		drifted := 0
		for _, f := range files {
			diff, err := fileDiff(flags.Out, f)
			if err != nil {
				return err
			}
			if diff != "" {
				drifted++
				cliutil.Writef(stdout, "%s", diff)
			}
		}
		if drifted > 0 {
			return fmt.Errorf("%w: %d file(s)", ErrDrift, drifted)
		}
	} else if err := renderer.WriteFiles(flags.Out, files); err != nil {
		return err
	}

	if !flags.Quiet {
		cliutil.Writef(stderr, "declgen version: %s\n", declgen.Version())
		cliutil.Writef(stderr, "Products: %d\n", len(cfg.ProductNames()))
		cliutil.Writef(stderr, "Modules: %d\n", result.Modules.Len())
		cliutil.Writef(stderr, "Issues: %d\n", len(result.Issues))
		if flags.Verbosity > 0 {
			for _, issue := range result.Issues {
				cliutil.Writef(stderr, "  %s\n", issue.String())
			}
		}
		cliutil.Writef(stderr, "Run Time: %v\n", result.RunTime)
		for _, product := range cfg.ProductNames() {
			if removed := result.Removed[product]; len(removed) > 0 {
				cliutil.Writef(stderr, "Pruned from %s: %d type(s)\n", product, len(removed))
			}
		}
		for _, f := range result.Failures {
			cliutil.Writef(stderr, "Failed: %s\n", f.Error())
		}
		if flags.Check {
			cliutil.Writef(stderr, "✓ %d file(s) up to date\n", len(files))
		} else {
			cliutil.Writef(stderr, "✓ Wrote %d file(s) to %s\n", len(files), flags.Out)
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d product pass(es) failed", len(result.Failures))
	}
	return nil
}

// fileDiff returns the unified diff from the file on disk to f, or "" when
// they are equal. A missing file diffs against empty content.
func fileDiff(dir string, f renderer.File) (string, error) {
	current, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(f.Name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("reading %s: %w", f.Name, err)
	}
	if string(current) == string(f.Content) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(f.Content)),
		FromFile: f.Name,
		ToFile:   f.Name + " (generated)",
		Context:  3,
	})
}
