package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCodes indicates an entry without any code to look up.
	ErrNoCodes = errors.New("entry has no codes")

	// ErrUnknownCategory indicates an entry type outside the known variants.
	ErrUnknownCategory = errors.New("unknown entry category")
)

// LoadError reports a cost table that could not be built at startup.
type LoadError struct {
	Resource string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("unable to load cost table %s: %v", e.Resource, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
