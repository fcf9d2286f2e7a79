package types

import "fmt"

// InvalidInputError reports a contract violation on the input series: a
// required field is missing or the series is empty. Numeric edge cases are
// never reported this way; they degrade to documented fallbacks instead.
type InvalidInputError struct {
	Field string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: series must have a non-empty %q field", e.Field)
}
