package lifecycle

import (
	"errors"
	"fmt"
)

// The error taxonomy of the lifecycle core. Callers classify failures with
// errors.Is; the HTTP layer owns the mapping to status codes so nothing in
// this package knows about transports.
var (
	// ErrNotFound covers entities that are absent or not owned by the
	// calling student.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState marks an operation that is not legal for the
	// entity's current lifecycle state.
	ErrInvalidState = errors.New("invalid lifecycle state")

	ErrRoomFull             = errors.New("room is full")
	ErrDuplicateReservation = errors.New("student already has a live reservation")
	ErrInvalidRange         = errors.New("new end date must be after the current end date")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrAlreadyPaid          = errors.New("invoice is already paid")

	// ErrRoomNotFound is a NotFound: matching on ErrNotFound catches it.
	ErrRoomNotFound = fmt.Errorf("%w: room", ErrNotFound)
)
