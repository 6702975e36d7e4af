package tide

import "fmt"

// ProviderUnavailableError is returned once every eligible provider and the
// stale cache have been exhausted. It wraps the last provider error, if any.
type ProviderUnavailableError struct {
	Err error
}

func (e *ProviderUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no tide provider available: %v", e.Err)
	}
	return "no tide provider available"
}

func (e *ProviderUnavailableError) Unwrap() error {
	return e.Err
}

// InsufficientDataError indicates a dataset with fewer than two extremes,
// which cannot support interpolation.
type InsufficientDataError struct {
	Extremes int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient tide data: %d extremes", e.Extremes)
}
