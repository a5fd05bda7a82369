package metro

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable is returned when no hop sequence connects two stations
	ErrUnreachable = errors.New("no path between stations")

	// ErrNotFound is returned for unknown lines, stations and pass serials
	ErrNotFound = errors.New("not found")

	// ErrInvalidConstruction is returned when the network topology being built is inconsistent
	ErrInvalidConstruction = errors.New("invalid network construction")

	// ErrCapacityExhausted is returned when no more pass serial numbers can be issued
	ErrCapacityExhausted = errors.New("pass serial numbers exhausted")

	// ErrInvalidOperation is returned for requests that make no sense, such as a ticket to the same station
	ErrInvalidOperation = errors.New("invalid operation")
)

// PathError reports that End cannot be reached from Start
type PathError struct {
	Start string
	End   string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("no path from station %s to %s", e.Start, e.End)
}

func (e *PathError) Unwrap() error {
	return ErrUnreachable
}

// Kind tags used in API responses and logs
const (
	KindUnreachable         = "unreachable"
	KindNotFound            = "not_found"
	KindInvalidConstruction = "invalid_construction"
	KindCapacityExhausted   = "capacity_exhausted"
	KindInvalidOperation    = "invalid_operation"
	KindUnknown             = "unknown"
)

// KindOf returns the kind tag of a metro error, or KindUnknown
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrUnreachable):
		return KindUnreachable
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidConstruction):
		return KindInvalidConstruction
	case errors.Is(err, ErrCapacityExhausted):
		return KindCapacityExhausted
	case errors.Is(err, ErrInvalidOperation):
		return KindInvalidOperation
	default:
		return KindUnknown
	}
}
