package codegen

import "fmt"

// InvariantError is raised with panic when the generator meets input the
// analyzer should have rejected. Callers that compile many scripts recover it
// per script.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return "codegen invariant violated: " + e.Msg }

// Invariantf builds an InvariantError for a panic.
func Invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}

// Recover converts a panic carrying an *InvariantError into an error. Other
// panics propagate. Use it as `defer codegen.Recover(&err)`.
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if ie, ok := r.(*InvariantError); ok {
		*err = ie
		return
	}
	panic(r)
}
