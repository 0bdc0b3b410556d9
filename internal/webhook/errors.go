package webhook

import (
	"errors"
	"fmt"
)

// ErrTransport is the single failure kind surfaced by Client.Send. Callers
// check it with errors.Is; Reason is diagnostic only.
var ErrTransport = errors.New("webhook: transport failure")

// Reason classifies a transport failure for logs and metrics.
type Reason string

const (
	ReasonInvalidRequest Reason = "invalid_request"
	ReasonNetwork        Reason = "network"
	ReasonTimeout        Reason = "timeout"
	ReasonStatus         Reason = "status"
	ReasonDecode         Reason = "decode"
)

// Error carries the context of a failed exchange.
type Error struct {
	Op     string
	Reason Reason
	Status int
	Body   string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("webhook: %s: %s", e.Op, e.Reason)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Err}
}

// ReasonOf returns the failure reason of err, or "" when err is not a
// webhook error.
func ReasonOf(err error) Reason {
	var werr *Error
	if errors.As(err, &werr) {
		return werr.Reason
	}
	return ""
}
