package config

import "errors"

// ErrInvalidValue is returned when an env var is outside its allowed range.
var ErrInvalidValue = errors.New("invalid value")
