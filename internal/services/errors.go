package services

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError is a local rejection: the request never reaches the
// upstream and is never queued. Handlers map it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// missingFields returns the sorted names of blank required fields.
func missingFields(required map[string]string) []string {
	var missing []string
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
