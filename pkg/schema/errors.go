package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Domain identifies which dataset failed validation.
type Domain string

const (
	DomainUser      Domain = "user"
	DomainDependant Domain = "dependant"
)

// ValidationError reports canonical columns that are still missing after the
// declared renames were applied. It is raised before any row is processed.
type ValidationError struct {
	Domain  Domain
	Missing []string
}

// NewValidationError builds a ValidationError with a sorted missing set so
// the message is stable for diagnostics and tests.
func NewValidationError(domain Domain, missing []string) *ValidationError {
	sorted := make([]string, len(missing))
	copy(sorted, missing)
	sort.Strings(sorted)
	return &ValidationError{Domain: domain, Missing: sorted}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("the following columns are missing from the %s data: %s",
		e.Domain, strings.Join(e.Missing, ", "))
}
