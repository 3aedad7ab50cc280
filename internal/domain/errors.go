package domain

import "errors"

var (
	// ErrInvalidInput marks inputs the engines refuse to compute with.
	ErrInvalidInput = errors.New("invalid input")

	ErrUnknownScenario = errors.New("unknown scenario")
	ErrUnknownVariable = errors.New("unknown variable")

	// ErrDegenerateBase is returned when a variable has a zero base value and
	// percentage variation is undefined.
	ErrDegenerateBase = errors.New("variable has zero base value")
)
