package differ

import (
	"fmt"

	"github.com/erraggy/declgen/declaration"
	"github.com/erraggy/declgen/doctree"
)

// Option is a function that configures a diff operation
type Option func(*diffConfig) error

// diffConfig holds configuration for a diff operation
type diffConfig struct {
	candidate  *declaration.Declaration
	reference  *declaration.Declaration
	product    string
	importPath string
	logger     doctree.Logger
}

// DiffWithOptions computes an incremental surface using functional options.
// A candidate and a reference are required.
//
// Example:
//
//	result, err := differ.DiffWithOptions(
//	    differ.WithCandidate(stock),
//	    differ.WithReference(main),
//	    differ.WithProduct("highstock"),
//	)
func DiffWithOptions(opts ...Option) (*DiffResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("differ: invalid options: %w", err)
	}
	d := &Differ{
		Product:    cfg.product,
		ImportPath: cfg.importPath,
		Logger:     doctree.OrNop(cfg.logger),
	}
	return d.Diff(cfg.candidate, cfg.reference), nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*diffConfig, error) {
	cfg := &diffConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.candidate == nil {
		return nil, fmt.Errorf("must specify a candidate declaration")
	}
	if cfg.reference == nil {
		return nil, fmt.Errorf("must specify a reference declaration")
	}
	return cfg, nil
}

// WithCandidate sets the tree whose novel declarations are kept
func WithCandidate(d *declaration.Declaration) Option {
	return func(cfg *diffConfig) error {
		cfg.candidate = d
		return nil
	}
}

// WithReference sets the tree the candidate is compared against
func WithReference(d *declaration.Declaration) Option {
	return func(cfg *diffConfig) error {
		cfg.reference = d
		return nil
	}
}

// WithProduct sets the modular product name
func WithProduct(product string) Option {
	return func(cfg *diffConfig) error {
		if product == "" {
			return fmt.Errorf("product cannot be empty")
		}
		cfg.product = product
		return nil
	}
}

// WithImportPath sets the path of the emitted external module
// Default: ""
func WithImportPath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.importPath = path
		return nil
	}
}

// WithLogger sets the logger for diff diagnostics
// Default: doctree.NopLogger
func WithLogger(l doctree.Logger) Option {
	return func(cfg *diffConfig) error {
		cfg.logger = l
		return nil
	}
}
