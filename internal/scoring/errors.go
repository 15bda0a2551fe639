package scoring

import "fmt"

// ConfigurationError indicates a scoring configuration defect: weights that
// do not sum to 1.0, or a requirement set or weight table referencing a
// category that is not tracked. It is a programming error and should surface
// immediately rather than being absorbed into a per-repository failure.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("scoring configuration error: %s", e.Reason)
}

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// InvariantViolationError indicates an upstream contract break: a batch
// result that is neither a clean success nor a clean failure.
type InvariantViolationError struct {
	URL    string
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("result invariant violation for %q: %s", e.URL, e.Detail)
}
