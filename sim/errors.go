package sim

import (
	"errors"
	"fmt"
)

// ErrFinished is returned by Model.Step once the horizon has been reached.
var ErrFinished = errors.New("simulation horizon reached")

// ConfigurationError reports a model that cannot be constructed: a missing or
// malformed initial-state field, an invalid config value, or a mandatory
// market-trend reference that was not supplied. It is fatal and raised before
// any step runs.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// ValidationError reports a decision that must not be applied.
type ValidationError struct {
	Car    CarModel // empty for fleet-wide violations
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Car == "" {
		return fmt.Sprintf("invalid decision: %s", e.Reason)
	}
	return fmt.Sprintf("invalid decision for %q: %s", e.Car, e.Reason)
}

// DataError reports a market-trend reference that has no row for a period and
// car. ExogInfo recovers from it with the stable-trend fallback.
type DataError struct {
	Period string
	Car    CarModel
	Reason string
}

func (e *DataError) Error() string {
	if e.Car == "" {
		return fmt.Sprintf("market data error (period %s): %s", e.Period, e.Reason)
	}
	return fmt.Sprintf("market data error (period %s, car %q): %s", e.Period, e.Car, e.Reason)
}
