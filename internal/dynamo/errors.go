package dynamo

import "errors"

// Domain errors for engine operations.
var (
	// ErrUnknownAttractor indicates a name that is not in the catalog.
	ErrUnknownAttractor = errors.New("dynamo: unknown attractor")

	// ErrUnknownIntegrator indicates an integrator name with no registration.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrSelectionRange indicates a selection index outside the active list.
	ErrSelectionRange = errors.New("dynamo: selection index out of range")

	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrGestureUnavailable indicates the gesture signal could not be started.
	ErrGestureUnavailable = errors.New("dynamo: gesture signal unavailable")
)

// ConfigError wraps ErrInvalidConfig with the offending field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "dynamo: invalid configuration: " + e.Field + ": " + e.Reason
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
