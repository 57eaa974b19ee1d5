// Package options provides shared helpers for validating functional options.
package options

import "github.com/erraggy/declgen/declerrors"

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources holds one flag per possible input telling whether it was set.
// The returned error is a *declerrors.ConfigError carrying noSourceMsg when
// nothing was set and multiSourceMsg when more than one was.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}

	switch {
	case count == 0:
		return &declerrors.ConfigError{Option: "input", Message: noSourceMsg}
	case count > 1:
		return &declerrors.ConfigError{Option: "input", Value: count, Message: multiSourceMsg}
	}
	return nil
}
