package doctree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/declgen/declerrors"
	"github.com/erraggy/declgen/internal/maputil"
	"github.com/erraggy/declgen/internal/options"
)

// SourceFormat is the encoding of a doc tree document.
type SourceFormat string

const (
	// SourceFormatJSON is a JSON document
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatYAML is a YAML document
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatUnknown means the format is detected from content
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains a loaded doc tree and metadata about it.
type ParseResult struct {
	// Root is the top node of the tree. Nil when the document was loaded
	// as a module map.
	Root *Node
	// Modules maps module keys (e.g. "code/highcharts") to their doc trees,
	// in document order. Only populated with WithModuleMap(true).
	Modules maputil.Ordered[*Node]
	// SourcePath is the file path or "<bytes>"/"<reader>" for in-memory input
	SourcePath string
	// SourceFormat is the detected or forced format
	SourceFormat SourceFormat
	// SourceSize is the size of the input in bytes
	SourceSize int64
	// LoadTime is the time spent reading and decoding the input
	LoadTime time.Duration
	// Stats summarizes the tree (all modules combined for a module map)
	Stats Stats
}

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	format    SourceFormat
	moduleMap bool
	logger    Logger
}

// ParseWithOptions loads a doc tree using functional options.
//
// Example:
//
//	result, err := doctree.ParseWithOptions(
//	    doctree.WithFilePath("tree-namespace.json"),
//	    doctree.WithModuleMap(true),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("doctree: invalid options: %w", err)
	}

	start := time.Now()
	var (
		data   []byte
		source string
		format = cfg.format
	)
	switch {
	case cfg.filePath != nil:
		source = *cfg.filePath
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("doctree: failed to read file: %w", err)
		}
		if format == SourceFormatUnknown {
			format = detectFormatFromPath(source)
		}
	case cfg.reader != nil:
		source = "<reader>"
		data, err = io.ReadAll(cfg.reader)
		if err != nil {
			return nil, fmt.Errorf("doctree: failed to read input: %w", err)
		}
	default:
		source = "<bytes>"
		data = cfg.bytes
	}
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}

	result := &ParseResult{
		SourcePath:   source,
		SourceFormat: format,
		SourceSize:   int64(len(data)),
	}

	if cfg.moduleMap {
		err = decode(data, format, &result.Modules)
	} else {
		result.Root = &Node{}
		err = decode(data, format, result.Root)
	}
	if err != nil {
		return nil, &declerrors.ParseError{Path: source, Message: "decoding " + string(format), Cause: err}
	}
	result.LoadTime = time.Since(start)

	if cfg.moduleMap {
		result.Stats = Stats{Kinds: make(map[string]int)}
		for _, n := range result.Modules.Values() {
			s := ComputeStats(n)
			result.Stats.NodeCount += s.NodeCount
			result.Stats.MaxDepth = max(result.Stats.MaxDepth, s.MaxDepth)
			for k, c := range s.Kinds {
				result.Stats.Kinds[k] += c
			}
		}
	} else {
		result.Stats = ComputeStats(result.Root)
	}

	cfg.logger.Debug("loaded doc tree",
		"source", source,
		"format", string(format),
		"nodes", result.Stats.NodeCount,
		"modules", result.Modules.Len(),
	)

	return result, nil
}

// Parse loads a single doc tree from a file.
func Parse(path string) (*ParseResult, error) {
	return ParseWithOptions(WithFilePath(path))
}

func decode(data []byte, format SourceFormat, v any) error {
	if format == SourceFormatYAML {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		format: SourceFormatUnknown,
		logger: NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"doctree: must specify an input source (use WithFilePath, WithReader, or WithBytes)",
		"doctree: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("doctree: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("doctree: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithFormat forces the input format instead of detecting it
func WithFormat(format SourceFormat) Option {
	return func(cfg *parseConfig) error {
		switch format {
		case SourceFormatJSON, SourceFormatYAML, SourceFormatUnknown:
			cfg.format = format
			return nil
		default:
			return &declerrors.ConfigError{Option: "format", Value: format, Message: "must be json or yaml"}
		}
	}
}

// WithModuleMap treats the document as an object of module key to doc tree
func WithModuleMap(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.moduleMap = enabled
		return nil
	}
}

// WithLogger sets the logger for the parse operation
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = OrNop(l)
		return nil
	}
}

func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}
