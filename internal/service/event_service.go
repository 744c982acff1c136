package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gigseat/internal/models"
	"gigseat/internal/repository"
	"gigseat/monitoring"
	"gigseat/pkg/rabbitmq"

	"gorm.io/gorm"
)

// ListEventsQuery carries raw filter input; Genre and Status are parsed
// strictly and unknown values fail the request instead of being dropped.
type ListEventsQuery struct {
	Genre  string
	Status string
	Page   int
	Limit  int
}

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event, firstTicket *models.Ticket) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context, q ListEventsQuery) ([]models.Event, int64, error)
	UpdateEvent(ctx context.Context, event *models.Event, userID uint) error
	DeleteEvent(ctx context.Context, id, userID uint) error
	// ToggleCancelled flips an event between cancelled and open. Only the
	// creator may do it; the toggle ignores date and inventory.
	ToggleCancelled(ctx context.Context, id, userID uint) (*models.Event, error)
	AddTicket(ctx context.Context, ticket *models.Ticket, userID uint) error
	// AttachImage records an uploaded file against the event: as the poster
	// when the flag is set, as a carousel image otherwise.
	AttachImage(ctx context.Context, eventID, userID uint, filename string, poster bool) error
}

type eventService struct {
	eventRepo  repository.EventRepository
	ticketRepo repository.TicketRepository
	publisher  *rabbitmq.Publisher
	now        func() time.Time
}

func NewEventService(eventRepo repository.EventRepository, ticketRepo repository.TicketRepository, publisher *rabbitmq.Publisher) EventService {
	return &eventService{
		eventRepo:  eventRepo,
		ticketRepo: ticketRepo,
		publisher:  publisher,
		now:        time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event, firstTicket *models.Ticket) error {
	event.Status = models.StatusOpen
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	// The create form carries an optional initial ticket type. No capacity
	// check applies to ticket types, only to orders.
	if firstTicket != nil {
		firstTicket.EventID = event.ID
		if err := s.ticketRepo.Create(ctx, firstTicket); err != nil {
			return fmt.Errorf("create ticket: %w", err)
		}
		event.Tickets = append(event.Tickets, *firstTicket)
	}

	monitoring.RecordEventCreated()
	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyEventCreated, event)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	event.Status = EffectiveStatus(event, s.now())
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, q ListEventsQuery) ([]models.Event, int64, error) {
	filter := repository.EventFilter{Limit: q.Limit}
	if q.Limit <= 0 {
		filter.Limit = 10
	}
	if q.Page > 1 {
		filter.Offset = (q.Page - 1) * filter.Limit
	}

	if q.Genre != "" {
		genre, err := models.ParseGenre(q.Genre)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		filter.Genre = &genre
	}
	if q.Status != "" {
		status, err := models.ParseEventStatus(q.Status)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		filter.Status = &status
	}

	events, total, err := s.eventRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	for i := range events {
		events[i].Status = EffectiveStatus(&events[i], now)
	}
	return events, total, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, event *models.Event, userID uint) error {
	existing, err := s.eventRepo.FindByID(ctx, event.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if existing.UserID != userID {
		return ErrNotAuthorized
	}

	event.UserID = existing.UserID
	event.Status = existing.Status
	event.CreatedAt = existing.CreatedAt
	if event.Poster == "" {
		event.Poster = existing.Poster
	}
	return s.eventRepo.Save(ctx, event)
}

func (s *eventService) DeleteEvent(ctx context.Context, id, userID uint) error {
	existing, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if existing.UserID != userID {
		return ErrNotAuthorized
	}
	return s.eventRepo.Delete(ctx, id)
}

func (s *eventService) ToggleCancelled(ctx context.Context, id, userID uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.UserID != userID {
		return nil, ErrNotAuthorized
	}

	key := rabbitmq.KeyEventCancelled
	if event.Status == models.StatusCancelled {
		// Reopening always lands on open; a prior sold-out state is not
		// restored and the next booking re-derives it.
		event.Status = models.StatusOpen
		key = rabbitmq.KeyEventReopened
	} else {
		event.Status = models.StatusCancelled
	}

	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}
	if s.publisher != nil {
		_ = s.publisher.Publish(key, map[string]uint{"event_id": event.ID})
	}
	return event, nil
}

func (s *eventService) AddTicket(ctx context.Context, ticket *models.Ticket, userID uint) error {
	event, err := s.eventRepo.FindByID(ctx, ticket.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if event.UserID != userID {
		return ErrNotAuthorized
	}
	if ticket.Price.IsNegative() {
		return fmt.Errorf("%w: ticket price must not be negative", ErrInvalidRequest)
	}
	return s.ticketRepo.Create(ctx, ticket)
}

func (s *eventService) AttachImage(ctx context.Context, eventID, userID uint, filename string, poster bool) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if event.UserID != userID {
		return ErrNotAuthorized
	}

	if poster {
		event.Poster = filename
		return s.eventRepo.Save(ctx, event)
	}
	return s.eventRepo.AddImage(ctx, &models.EventImage{EventID: eventID, Filename: filename})
}
