package service

import (
	"time"

	"gigseat/internal/models"
)

// Event status is partly derived: a past event reads as inactive without the
// stored row ever changing. Cancellation always wins over date expiry.

// EffectiveStatus returns the status an event presents at the given time.
func EffectiveStatus(event *models.Event, now time.Time) models.EventStatus {
	if event.Status == models.StatusCancelled {
		return models.StatusCancelled
	}
	if pastDate(event.EventDate, now) {
		return models.StatusInactive
	}
	return event.Status
}

// Bookable reports whether new orders may be placed. Sold-out events stay
// bookable here; the inventory check is what rejects them, so a cancellation
// freeing seats keeps working without a status reversal.
func Bookable(event *models.Event, now time.Time) bool {
	switch EffectiveStatus(event, now) {
	case models.StatusCancelled, models.StatusInactive:
		return false
	}
	return true
}

// pastDate compares calendar days, not instants: an event is active for the
// whole of its own day.
func pastDate(eventDate, now time.Time) bool {
	ey, em, ed := eventDate.Date()
	ny, nm, nd := now.Date()
	event := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return event.Before(today)
}
