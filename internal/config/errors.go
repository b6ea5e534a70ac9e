package config

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// FieldError names the configuration key that failed validation.
type FieldError struct {
	Key    string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	msg := ErrInvalidConfig.Error() + ": " + e.Key + " " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap matches ErrInvalidConfig and any underlying parse error.
func (e *FieldError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidConfig}
	}
	return []error{ErrInvalidConfig, e.Err}
}

func invalid(key, reason string) error {
	return &FieldError{Key: key, Reason: reason}
}
