package joiner

import (
	"fmt"

	"github.com/erraggy/declgen/declaration"
	"github.com/erraggy/declgen/doctree"
)

// Option is a function that configures a join operation
type Option func(*joinConfig) error

// joinConfig holds configuration for a join operation
type joinConfig struct {
	sources  []*declaration.Declaration
	strategy *Strategy
	logger   doctree.Logger
}

// JoinWithOptions folds the configured sources into target using
// functional options.
//
// Example:
//
//	result, err := joiner.JoinWithOptions(namespace,
//		joiner.WithSources(options),
//		joiner.WithStrategy(joiner.StrategyAppend),
//	)
func JoinWithOptions(target *declaration.Declaration, opts ...Option) (*JoinResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("joiner: invalid options: %w", err)
	}

	config := DefaultConfig()
	if cfg.strategy != nil {
		config.Strategy = *cfg.strategy
	}
	if cfg.logger != nil {
		config.Logger = cfg.logger
	}
	return New(config).Join(target, cfg.sources...)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*joinConfig, error) {
	cfg := &joinConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if len(cfg.sources) == 0 {
		return nil, fmt.Errorf("must specify at least one source declaration")
	}
	return cfg, nil
}

// WithSources adds source trees to fold into the target
func WithSources(sources ...*declaration.Declaration) Option {
	return func(cfg *joinConfig) error {
		cfg.sources = append(cfg.sources, sources...)
		return nil
	}
}

// WithStrategy sets the join strategy
// Default: StrategyMerge
func WithStrategy(strategy Strategy) Option {
	return func(cfg *joinConfig) error {
		if !IsValidStrategy(string(strategy)) {
			return fmt.Errorf("invalid strategy %q (valid: %v)", strategy, ValidStrategies())
		}
		cfg.strategy = &strategy
		return nil
	}
}

// WithConfig applies the strategy and logger of an existing JoinerConfig
func WithConfig(config JoinerConfig) Option {
	return func(cfg *joinConfig) error {
		if config.Strategy != "" {
			cfg.strategy = &config.Strategy
		}
		cfg.logger = config.Logger
		return nil
	}
}

// WithLogger sets the logger for join diagnostics
// Default: doctree.NopLogger
func WithLogger(l doctree.Logger) Option {
	return func(cfg *joinConfig) error {
		cfg.logger = l
		return nil
	}
}
