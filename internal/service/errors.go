package service

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrOrderNotFound  = errors.New("order not found")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrUserNotFound   = errors.New("user not found")

	ErrNotAuthorized      = errors.New("not authorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("username, email or phone number already registered")

	// ErrEventNotBookable covers cancelled and inactive events; it is checked
	// before any inventory arithmetic runs.
	ErrEventNotBookable = errors.New("event is not open for booking")

	ErrNoTicketsSelected = errors.New("no tickets selected")
	ErrInvalidRequest    = errors.New("invalid request")
)

// CapacityError rejects a booking that would exceed the event's capacity and
// carries the number of seats still available.
type CapacityError struct {
	Requested int
	Remaining int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot book %d tickets, only %d left", e.Requested, e.Remaining)
}
