package remux

import (
	"fmt"
	"strings"
)

// InvocationError reports a failed external tool run: non-zero exit,
// missing output, or an output that failed validation. Stderr holds the
// tail of the tool's diagnostic text.
type InvocationError struct {
	Tool   string
	Args   []string
	Stderr string
	Err    error
}

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Tool, strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Diagnostic returns the captured tool output, falling back to the wrapped
// error text when the tool wrote nothing.
func (e *InvocationError) Diagnostic() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return e.Err.Error()
}
