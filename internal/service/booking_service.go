package service

import (
	"context"
	"errors"
	"time"

	"gigseat/internal/models"
	"gigseat/internal/repository"
	"gigseat/monitoring"
	"gigseat/pkg/rabbitmq"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderLine is one requested ticket type within a booking.
type OrderLine struct {
	TicketID uint
	Quantity int
}

// Availability summarizes an event's inventory for display.
type Availability struct {
	Event     *models.Event
	Booked    int
	Remaining *int // nil when capacity is unlimited
}

type BookingService interface {
	// BookTickets books every line atomically: either all order rows are
	// persisted or none are. Lines with non-positive quantity are skipped.
	BookTickets(ctx context.Context, eventID, userID uint, lines []OrderLine) ([]models.Order, error)
	CancelOrder(ctx context.Context, orderID, userID uint) error
	GetAvailability(ctx context.Context, eventID uint) (*Availability, error)
	ListUpcomingOrders(ctx context.Context, userID uint) ([]models.Order, error)
	ListPastOrders(ctx context.Context, userID uint) ([]models.Order, error)
}

type bookingService struct {
	orderRepo  repository.OrderRepository
	eventRepo  repository.EventRepository
	ticketRepo repository.TicketRepository
	publisher  *rabbitmq.Publisher
	now        func() time.Time
}

func NewBookingService(orderRepo repository.OrderRepository, eventRepo repository.EventRepository, ticketRepo repository.TicketRepository, publisher *rabbitmq.Publisher) BookingService {
	return &bookingService{
		orderRepo:  orderRepo,
		eventRepo:  eventRepo,
		ticketRepo: ticketRepo,
		publisher:  publisher,
		now:        time.Now,
	}
}

func (s *bookingService) BookTickets(ctx context.Context, eventID, userID uint, lines []OrderLine) ([]models.Order, error) {
	var created []models.Order
	soldOut := false

	err := s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		// Lock the event row first: the capacity check and the order writes
		// below must not interleave with another booking for the same event.
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if !Bookable(event, s.now()) {
			return ErrEventNotBookable
		}

		booked64, err := s.orderRepo.SumQuantityForEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		booked := int(booked64)

		total := 0
		for _, line := range lines {
			if line.Quantity <= 0 {
				continue
			}

			ticket, err := s.ticketRepo.FindByID(ctx, line.TicketID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTicketNotFound
				}
				return err
			}
			if ticket.EventID != eventID {
				return ErrTicketNotFound
			}

			// Cumulative across the whole request: earlier lines count
			// against the capacity seen by later ones.
			if err := AuthorizeBooking(event.Attendees, booked+total, line.Quantity); err != nil {
				return err
			}

			order := models.Order{
				Reference: uuid.NewString(),
				Quantity:  line.Quantity,
				Price:     ticket.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
				UserID:    userID,
				EventID:   eventID,
				TicketID:  ticket.ID,
			}
			if err := s.orderRepo.Create(ctx, tx, &order); err != nil {
				return err
			}
			created = append(created, order)
			total += line.Quantity
		}

		if total == 0 {
			return ErrNoTicketsSelected
		}

		if SoldOutAfter(event.Attendees, booked+total) {
			if err := s.eventRepo.UpdateStatus(ctx, tx, eventID, models.StatusSoldOut); err != nil {
				return err
			}
			soldOut = true
		}
		return nil
	})
	if err != nil {
		monitoring.RecordBookingRejected(rejectionReason(err))
		return nil, err
	}

	for _, order := range created {
		monitoring.RecordOrderBooked(order.Quantity)
		if s.publisher != nil {
			_ = s.publisher.Publish(rabbitmq.KeyOrderCreated, order)
		}
	}
	if soldOut && s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyEventSoldOut, map[string]uint{"event_id": eventID})
	}
	return created, nil
}

// CancelOrder deletes the order after an ownership check. A sold-out event is
// deliberately not reopened here; the organizer reopens it explicitly.
func (s *bookingService) CancelOrder(ctx context.Context, orderID, userID uint) error {
	err := s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByID(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.UserID != userID {
			return ErrNotAuthorized
		}
		return s.orderRepo.Delete(ctx, tx, orderID)
	})
	if err != nil {
		return err
	}

	monitoring.RecordOrderCancelled()
	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyOrderCancelled, map[string]uint{"order_id": orderID})
	}
	return nil
}

func (s *bookingService) GetAvailability(ctx context.Context, eventID uint) (*Availability, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	event.Status = EffectiveStatus(event, s.now())

	total, err := s.orderRepo.SumQuantityForEvent(ctx, nil, eventID)
	if err != nil {
		return nil, err
	}
	booked := int(total)

	return &Availability{
		Event:     event,
		Booked:    booked,
		Remaining: RemainingSeats(event.Attendees, booked),
	}, nil
}

func (s *bookingService) ListUpcomingOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orderRepo.FindByUser(ctx, userID, true)
}

func (s *bookingService) ListPastOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orderRepo.FindByUser(ctx, userID, false)
}

func rejectionReason(err error) string {
	var capErr *CapacityError
	switch {
	case errors.As(err, &capErr):
		return "capacity"
	case errors.Is(err, ErrEventNotBookable):
		return "not_bookable"
	case errors.Is(err, ErrNoTicketsSelected):
		return "empty_request"
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrTicketNotFound):
		return "not_found"
	default:
		return "error"
	}
}
