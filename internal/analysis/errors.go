package analysis

import (
	"errors"
	"fmt"
)

// DefaultEmptyMessage is reported when the service returns no species and no
// message of its own.
const DefaultEmptyMessage = "no analyzable data was found"

// ErrBusy is returned by Runner.Run while another run is in flight.
var ErrBusy = errors.New("an analysis is already running")

// NoSelectionError indicates analysis was requested with no habitat selected.
// No network call is made.
type NoSelectionError struct{}

func (e *NoSelectionError) Error() string { return "select at least one relevé before running the analysis" }

// TransportError covers network failures, non-2xx statuses and non-JSON or
// undecodable bodies.
type TransportError struct {
	StatusCode  int
	ContentType string
	Message     string
	RequestID   string
	Err         error
}

func (e *TransportError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = fmt.Sprintf("server error: %d", e.StatusCode)
	}
	switch {
	case e.StatusCode != 0 && e.RequestID != "":
		return fmt.Sprintf("analysis failed: status=%d request_id=%s message=%s", e.StatusCode, e.RequestID, msg)
	case e.StatusCode != 0:
		return fmt.Sprintf("analysis failed: status=%d message=%s", e.StatusCode, msg)
	}
	return "analysis failed: " + msg
}

func (e *TransportError) Unwrap() error { return e.Err }

// EmptyResultError indicates a well-formed reply that carries nothing to
// analyze: an explicit error or message field, or no species records.
type EmptyResultError struct {
	Message string
}

func (e *EmptyResultError) Error() string {
	if e.Message == "" {
		return DefaultEmptyMessage
	}
	return e.Message
}

// IsUserFacing reports whether err belongs to the taxonomy shown in the error
// banner, as opposed to a programming or I/O error.
func IsUserFacing(err error) bool {
	var (
		ns *NoSelectionError
		te *TransportError
		ee *EmptyResultError
	)
	return errors.As(err, &ns) || errors.As(err, &te) || errors.As(err, &ee) || errors.Is(err, ErrBusy)
}
