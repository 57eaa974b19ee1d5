// Package commands provides CLI command handlers for declgen.
package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/declgen/doctree"
	"github.com/erraggy/declgen/internal/cliutil"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	cliutil.Writef(w, "%s\n", bytes)
	return nil
}

// VerbosityToLevel maps the number of -v flags to a zap level.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= 0:
		return zapcore.WarnLevel
	case verbosity == 1:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// NewLogger builds a console logger writing to w at the level selected by
// verbosity.
func NewLogger(w io.Writer, verbosity int) *zap.SugaredLogger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encoderConfig.EncodeCaller = nil
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), VerbosityToLevel(verbosity))
	return zap.New(core).Sugar().Named("declgen")
}

// ZapAdapter implements doctree.Logger on top of a zap SugaredLogger.
type ZapAdapter struct {
	logger *zap.SugaredLogger
}

// NewZapAdapter wraps logger.
func NewZapAdapter(logger *zap.SugaredLogger) *ZapAdapter {
	return &ZapAdapter{logger: logger}
}

// Debug implements doctree.Logger.
func (z *ZapAdapter) Debug(msg string, attrs ...any) { z.logger.Debugw(msg, attrs...) }

// Info implements doctree.Logger.
func (z *ZapAdapter) Info(msg string, attrs ...any) { z.logger.Infow(msg, attrs...) }

// Warn implements doctree.Logger.
func (z *ZapAdapter) Warn(msg string, attrs ...any) { z.logger.Warnw(msg, attrs...) }

// Error implements doctree.Logger.
func (z *ZapAdapter) Error(msg string, attrs ...any) { z.logger.Errorw(msg, attrs...) }

// With implements doctree.Logger.
func (z *ZapAdapter) With(attrs ...any) doctree.Logger {
	return &ZapAdapter{logger: z.logger.With(attrs...)}
}

// Sync flushes buffered log entries.
func (z *ZapAdapter) Sync() {
	_ = z.logger.Sync()
}

// verbosityFlag counts repeated -v flags.
type verbosityFlag int

func (v *verbosityFlag) String() string { return fmt.Sprint(int(*v)) }

func (v *verbosityFlag) Set(string) error {
	*v++
	return nil
}

// IsBoolFlag lets -v be given without a value.
func (v *verbosityFlag) IsBoolFlag() bool { return true }
