package lambda

import "fmt"

// SyntaxError reports malformed source text. Offset is the byte offset
// into the input at which the problem was detected.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}
