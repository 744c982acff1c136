package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestAuthorizeBooking_UnlimitedCapacity(t *testing.T) {
	assert.NoError(t, AuthorizeBooking(nil, 0, 100))
	assert.NoError(t, AuthorizeBooking(nil, 1_000_000, 1_000_000))
}

func TestAuthorizeBooking_WithinCapacity(t *testing.T) {
	assert.NoError(t, AuthorizeBooking(intPtr(10), 0, 10))
	assert.NoError(t, AuthorizeBooking(intPtr(10), 7, 3))
}

func TestAuthorizeBooking_ExceedsCapacity(t *testing.T) {
	err := AuthorizeBooking(intPtr(10), 7, 5)
	require.Error(t, err)

	capErr, ok := err.(*CapacityError)
	require.True(t, ok)
	assert.Equal(t, 3, capErr.Remaining)
	assert.Equal(t, 5, capErr.Requested)
}

func TestAuthorizeBooking_FullEvent(t *testing.T) {
	err := AuthorizeBooking(intPtr(10), 10, 1)
	require.Error(t, err)

	capErr, ok := err.(*CapacityError)
	require.True(t, ok)
	assert.Equal(t, 0, capErr.Remaining)
}

func TestRemainingSeats(t *testing.T) {
	assert.Nil(t, RemainingSeats(nil, 50))

	left := RemainingSeats(intPtr(10), 7)
	require.NotNil(t, left)
	assert.Equal(t, 3, *left)

	// Overbooked data from before a capacity was lowered reads as zero.
	left = RemainingSeats(intPtr(10), 12)
	require.NotNil(t, left)
	assert.Equal(t, 0, *left)
}

func TestSoldOutAfter(t *testing.T) {
	assert.False(t, SoldOutAfter(nil, 1_000_000))
	assert.False(t, SoldOutAfter(intPtr(10), 9))
	assert.True(t, SoldOutAfter(intPtr(10), 10))
	assert.True(t, SoldOutAfter(intPtr(10), 11))
}
