package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersBooked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_booked_total",
			Help: "Orders persisted",
		},
	)

	ordersCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_cancelled_total",
			Help: "Orders cancelled by their owner",
		},
	)

	ticketsBooked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_booked_total",
			Help: "Total ticket quantity across all booked orders",
		},
	)

	bookingRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_rejections_total",
			Help: "Rejected booking requests by reason",
		},
		[]string{"reason"},
	)

	eventsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "events_created_total",
			Help: "Events created",
		},
	)
)

func RecordOrderBooked(quantity int) {
	ordersBooked.Inc()
	ticketsBooked.Add(float64(quantity))
}

func RecordOrderCancelled() {
	ordersCancelled.Inc()
}

func RecordBookingRejected(reason string) {
	bookingRejections.WithLabelValues(reason).Inc()
}

func RecordEventCreated() {
	eventsCreated.Inc()
}
