package service

// Inventory accounting for a single event: how many tickets are already sold
// and whether a further request still fits under the optional capacity.

// RemainingSeats returns how many seats are still sellable, or nil when the
// event has no capacity set (unlimited).
func RemainingSeats(attendees *int, booked int) *int {
	if attendees == nil {
		return nil
	}
	left := *attendees - booked
	if left < 0 {
		left = 0
	}
	return &left
}

// AuthorizeBooking accepts a requested quantity against the capacity given the
// quantity already booked. Events without a capacity never reject.
func AuthorizeBooking(attendees *int, booked, requested int) error {
	if attendees == nil {
		return nil
	}
	if booked+requested > *attendees {
		return &CapacityError{Requested: requested, Remaining: *RemainingSeats(attendees, booked)}
	}
	return nil
}

// SoldOutAfter reports whether the event reaches capacity once total tickets
// are booked.
func SoldOutAfter(attendees *int, total int) bool {
	return attendees != nil && total >= *attendees
}
