package errorx

import "fmt"

type Error struct {
	Code    Code
	Message string
}

func (e Error) Error() string {
	return e.Message
}

// New creates an Error with a formatted message. The message is returned to
// the client as-is, so it must never contain internal details. Log those with
// xcontext.Logger instead.
func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}
