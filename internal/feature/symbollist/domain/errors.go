// Package domain holds catalogue-level errors.
package domain

import "errors"

var (
	// ErrSymbolExists is returned when registering a code that is already catalogued.
	ErrSymbolExists = errors.New("symbol already exists")
	// ErrInvalidSymbol is returned for a symbol without a code.
	ErrInvalidSymbol = errors.New("symbol code is required")
)
