// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository- and directory-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors. ErrorUnauthorized covers every client-caused
	// authentication failure with a single indistinguishable value;
	// ErrorInternal covers consistency violations and downstream faults.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
)
