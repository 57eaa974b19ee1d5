package joiner

import (
	"fmt"
	"time"

	"github.com/erraggy/declgen/declaration"
	"github.com/erraggy/declgen/doctree"
)

// Strategy defines how source declarations are folded into the target
type Strategy string

const (
	// StrategyMerge deep merges same-named declarations
	StrategyMerge Strategy = "merge"
	// StrategyAppend moves all source children into the target unchanged
	StrategyAppend Strategy = "append"
)

// ValidStrategies returns all valid strategy strings
func ValidStrategies() []string {
	return []string{string(StrategyMerge), string(StrategyAppend)}
}

// IsValidStrategy checks if a strategy string is valid
func IsValidStrategy(strategy string) bool {
	switch Strategy(strategy) {
	case StrategyMerge, StrategyAppend:
		return true
	default:
		return false
	}
}

// JoinerConfig configures how declaration trees are joined
type JoinerConfig struct {
	// Strategy selects merge or append
	Strategy Strategy
	// Logger receives join diagnostics
	Logger doctree.Logger
}

// DefaultConfig returns a configuration that deep merges
func DefaultConfig() JoinerConfig {
	return JoinerConfig{
		Strategy: StrategyMerge,
		Logger:   doctree.NopLogger{},
	}
}

// Joiner folds declaration trees into a target.
//
// Concurrency: Joiner instances are not safe for concurrent use on the
// same target tree.
type Joiner struct {
	config JoinerConfig
}

// New creates a new Joiner instance with the provided configuration
func New(config JoinerConfig) *Joiner {
	config.Logger = doctree.OrNop(config.Logger)
	if config.Strategy == "" {
		config.Strategy = StrategyMerge
	}
	return &Joiner{config: config}
}

// JoinResult contains the joined target and counters
type JoinResult struct {
	// Target is the tree the sources were folded into
	Target *declaration.Declaration
	// Strategy is the strategy that was applied
	Strategy Strategy
	// SourceCount is the number of source trees folded in
	SourceCount int
	// MergedCount counts declarations merged into an existing partner
	MergedCount int
	// AddedCount counts declarations appended to the target
	AddedCount int
	// Warnings contains non-fatal issues, e.g. kind mismatches
	Warnings JoinWarnings
	// JoinTime is the duration of the join
	JoinTime time.Duration
}

// HasWarnings returns true if there are any warnings
func (r *JoinResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Join folds every source into target according to the configured strategy.
// A nil source is skipped.
func (j *Joiner) Join(target *declaration.Declaration, sources ...*declaration.Declaration) (*JoinResult, error) {
	if target == nil {
		return nil, fmt.Errorf("joiner: target declaration is nil")
	}
	if !IsValidStrategy(string(j.config.Strategy)) {
		return nil, fmt.Errorf("joiner: invalid strategy %q (valid: %v)", j.config.Strategy, ValidStrategies())
	}

	start := time.Now()
	result := &JoinResult{Target: target, Strategy: j.config.Strategy}
	for _, source := range sources {
		if source == nil {
			continue
		}
		result.SourceCount++
		switch j.config.Strategy {
		case StrategyAppend:
			children := source.RemoveChildren()
			target.AddChildren(children...)
			result.AddedCount += len(children)
		default:
			m := merger{result: result}
			m.merge(target, source)
		}
	}
	result.JoinTime = time.Since(start)

	j.config.Logger.Debug("joined declarations",
		"target", target.FullName(),
		"strategy", string(result.Strategy),
		"sources", result.SourceCount,
		"merged", result.MergedCount,
		"added", result.AddedCount,
	)
	for _, w := range result.Warnings {
		j.config.Logger.Warn(w.Message, "path", w.Path, "category", string(w.Category))
	}
	return result, nil
}

// Merge deep merges source into target. source is not modified.
func Merge(target, source *declaration.Declaration) {
	if target == nil || source == nil {
		return
	}
	m := merger{result: &JoinResult{}}
	m.merge(target, source)
}

type merger struct {
	result *JoinResult
}

func (m *merger) merge(target, source *declaration.Declaration) {
	if target.Description == "" {
		target.Description = source.Description
	}
	target.AddTypes(source.Types...)

	seen := make(map[string]int)
	for _, child := range source.Children() {
		n := seen[child.Name]
		seen[child.Name] = n + 1

		partners := target.ChildrenNamed(child.Name)
		if n >= len(partners) {
			target.AddChildren(child.Clone())
			m.result.AddedCount++
			continue
		}
		partner := partners[n]
		if partner.Kind != child.Kind {
			m.result.Warnings = append(m.result.Warnings, newKindMismatchWarning(partner, child))
		}
		m.merge(partner, child)
		m.result.MergedCount++
	}
}
