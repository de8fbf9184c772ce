package core

import "errors"

// Sentinel errors for the orchestrator. Services wrap these with %w so
// callers can classify failures with errors.Is.
var (
	// ErrValidation marks bad or empty caller input.
	ErrValidation = errors.New("validation failed")
	// ErrConfiguration marks missing credentials or zone configuration.
	ErrConfiguration = errors.New("configuration missing")
	// ErrNetworkResolution marks an exhausted public IP discovery chain.
	ErrNetworkResolution = errors.New("public ip discovery failed")
	// ErrProvider marks a remote API failure or non-success response.
	ErrProvider = errors.New("provider request failed")
	// ErrAliasCollision marks exhausted masked-subdomain regeneration.
	ErrAliasCollision = errors.New("masked subdomain collision")
	// ErrProcessTimeout marks an external command exceeding its bound.
	ErrProcessTimeout = errors.New("process timed out")
	// ErrNotFound marks a missing resource.
	ErrNotFound = errors.New("not found")
)
