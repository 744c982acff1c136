package service

import (
	"testing"
	"time"

	"gigseat/internal/models"

	"github.com/stretchr/testify/assert"
)

var lifecycleNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func eventOn(date time.Time, status models.EventStatus) *models.Event {
	return &models.Event{EventDate: date, Status: status}
}

func TestEffectiveStatus_PastDateBecomesInactive(t *testing.T) {
	yesterday := lifecycleNow.AddDate(0, 0, -1)
	assert.Equal(t, models.StatusInactive, EffectiveStatus(eventOn(yesterday, models.StatusOpen), lifecycleNow))
	assert.Equal(t, models.StatusInactive, EffectiveStatus(eventOn(yesterday, models.StatusSoldOut), lifecycleNow))
}

func TestEffectiveStatus_CancelledWinsOverDate(t *testing.T) {
	yesterday := lifecycleNow.AddDate(0, 0, -1)
	assert.Equal(t, models.StatusCancelled, EffectiveStatus(eventOn(yesterday, models.StatusCancelled), lifecycleNow))
}

func TestEffectiveStatus_EventDayStillActive(t *testing.T) {
	// The event's own day counts as active even late in the evening.
	morning := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	night := time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, models.StatusOpen, EffectiveStatus(eventOn(morning, models.StatusOpen), night))
}

func TestEffectiveStatus_FutureKeepsStoredStatus(t *testing.T) {
	tomorrow := lifecycleNow.AddDate(0, 0, 1)
	assert.Equal(t, models.StatusOpen, EffectiveStatus(eventOn(tomorrow, models.StatusOpen), lifecycleNow))
	assert.Equal(t, models.StatusSoldOut, EffectiveStatus(eventOn(tomorrow, models.StatusSoldOut), lifecycleNow))
}

func TestBookable(t *testing.T) {
	tomorrow := lifecycleNow.AddDate(0, 0, 1)
	yesterday := lifecycleNow.AddDate(0, 0, -1)

	assert.True(t, Bookable(eventOn(tomorrow, models.StatusOpen), lifecycleNow))
	// Sold out passes the gate; the capacity check is what rejects it.
	assert.True(t, Bookable(eventOn(tomorrow, models.StatusSoldOut), lifecycleNow))
	assert.False(t, Bookable(eventOn(tomorrow, models.StatusCancelled), lifecycleNow))
	assert.False(t, Bookable(eventOn(yesterday, models.StatusOpen), lifecycleNow))
	assert.False(t, Bookable(eventOn(tomorrow, models.StatusInactive), lifecycleNow))
}

func TestParseEventStatus_FailsClosed(t *testing.T) {
	status, err := models.ParseEventStatus("sold out")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusSoldOut, status)

	_, err = models.ParseEventStatus("SOLD_OUT")
	assert.Error(t, err)
	_, err = models.ParseEventStatus("")
	assert.Error(t, err)
}

func TestParseGenre_FailsClosed(t *testing.T) {
	genre, err := models.ParseGenre("hip hop")
	assert.NoError(t, err)
	assert.Equal(t, models.GenreHipHop, genre)

	_, err = models.ParseGenre("polka")
	assert.Error(t, err)
}
