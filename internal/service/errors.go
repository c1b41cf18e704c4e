package service

import "fmt"

// ConfigError means the server is missing configuration; the request itself was fine.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// InputError is a client mistake; Message is shown to the caller as-is.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// UpstreamError wraps a failed language-model call.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("upstream: %v", e.Err) }

func (e *UpstreamError) Unwrap() error { return e.Err }
