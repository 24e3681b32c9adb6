package la

import "fmt"

// SingularMatrixError reports a factorization that hit a zero (or
// numerically negligible) pivot: the operator is not invertible.
type SingularMatrixError struct {
	Row   int
	Pivot float64
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("singular matrix: pivot magnitude %g at row %d", e.Pivot, e.Row)
}

// ConfigurationError reports an unrecognized solver option key or value.
type ConfigurationError struct {
	Key   string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unrecognized solver option: %s = %q", e.Key, e.Value)
}
