package declerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("unexpected EOF")
		err := &ParseError{Path: "tree.json", Line: 42, Message: "invalid node", Cause: cause}
		assert.Equal(t, "parse error in tree.json at line 42: invalid node: unexpected EOF", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		assert.Equal(t, "parse error", (&ParseError{}).Error())
	})

	t.Run("Is matches sentinel through wrapping", func(t *testing.T) {
		err := fmt.Errorf("doctree: %w", &ParseError{Path: "a.yaml"})
		assert.ErrorIs(t, err, ErrParse)
		assert.NotErrorIs(t, err, ErrConfig)
	})
}

func TestAnchorError(t *testing.T) {
	err := &AnchorError{Pass: "options", Anchor: "Highcharts.Options#series"}
	assert.Equal(t, "missing anchor Highcharts.Options#series in options pass", err.Error())

	wrapped := fmt.Errorf("generator: %w", err)
	assert.ErrorIs(t, wrapped, ErrMissingAnchor)

	var target *AnchorError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "options", target.Pass)

	assert.Equal(t, "missing anchor: no data", (&AnchorError{Message: "no data"}).Error())
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "mainModule", Value: "code/x", Message: "not a product module"}
	assert.Equal(t, "configuration error for mainModule (value: code/x): not a product module", err.Error())
	assert.ErrorIs(t, err, ErrConfig)
	assert.Nil(t, err.Unwrap())
}
