package pipeline

import "fmt"

// ValidationError rejects input the pipeline cannot engrave, such as a non-finite
// timestamp or pitch. Index is -1 for errors that are not about a single note.
type ValidationError struct {
	Index int
	Field string
	Value float64
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid %v: %v", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %v on note %d: %v", e.Field, e.Index, e.Value)
}
