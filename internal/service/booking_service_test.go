package service

import (
	"context"
	"testing"
	"time"

	"gigseat/internal/models"
	"gigseat/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- In-memory fakes ---
//
// fakeOrderRepo snapshots its rows around Transaction so a failing booking
// rolls back, matching the all-or-nothing contract of the real store. It hands
// fn a distinct handle and records which handle each call received, so tests
// can check that reads and writes inside a transaction share it.

type fakeOrderRepo struct {
	orders []models.Order
	nextID uint

	txHandle   *gorm.DB
	findByIDTx []*gorm.DB
	deleteTx   []*gorm.DB
}

func (f *fakeOrderRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	f.txHandle = &gorm.DB{}
	snapshot := append([]models.Order(nil), f.orders...)
	if err := fn(f.txHandle); err != nil {
		f.orders = snapshot
		return err
	}
	return nil
}

func (f *fakeOrderRepo) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	f.nextID++
	order.ID = f.nextID
	order.CreatedAt = time.Now()
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error) {
	f.findByIDTx = append(f.findByIDTx, tx)
	for i := range f.orders {
		if f.orders[i].ID == id {
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) FindByEventID(ctx context.Context, eventID uint) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.EventID == eventID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) FindByUser(ctx context.Context, userID uint, upcoming bool) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) SumQuantityForEvent(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error) {
	var total int64
	for _, o := range f.orders {
		if o.EventID == eventID {
			total += int64(o.Quantity)
		}
	}
	return total, nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	f.deleteTx = append(f.deleteTx, tx)
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeEventRepo struct {
	events map[uint]*models.Event
}

func (f *fakeEventRepo) Create(ctx context.Context, event *models.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	if e, ok := f.events[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEventRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeEventRepo) FindAll(ctx context.Context, filter repository.EventFilter) ([]models.Event, int64, error) {
	var out []models.Event
	for _, e := range f.events {
		if filter.Genre != nil && e.Genre != *filter.Genre {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEventRepo) Save(ctx context.Context, event *models.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.EventStatus) error {
	if e, ok := f.events[id]; ok {
		e.Status = status
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeEventRepo) Delete(ctx context.Context, id uint) error {
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) AddImage(ctx context.Context, image *models.EventImage) error {
	return nil
}

type fakeTicketRepo struct {
	tickets map[uint]*models.Ticket
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *models.Ticket) error {
	f.tickets[ticket.ID] = ticket
	return nil
}

func (f *fakeTicketRepo) FindByID(ctx context.Context, id uint) (*models.Ticket, error) {
	if t, ok := f.tickets[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTicketRepo) FindByEventID(ctx context.Context, eventID uint) ([]models.Ticket, error) {
	var out []models.Ticket
	for _, t := range f.tickets {
		if t.EventID == eventID {
			out = append(out, *t)
		}
	}
	return out, nil
}

// --- Fixtures ---

type bookingFixture struct {
	svc    BookingService
	orders *fakeOrderRepo
	events *fakeEventRepo
}

func newBookingFixture(t *testing.T, attendees *int) *bookingFixture {
	t.Helper()
	events := &fakeEventRepo{events: map[uint]*models.Event{
		1: {
			ID:        1,
			Title:     "Riverside Jazz Night",
			EventDate: time.Now().AddDate(0, 1, 0),
			Status:    models.StatusOpen,
			Attendees: attendees,
			UserID:    1,
		},
	}}
	tickets := &fakeTicketRepo{tickets: map[uint]*models.Ticket{
		10: {ID: 10, Type: "general", Price: decimal.NewFromInt(50), EventID: 1},
		11: {ID: 11, Type: "vip", Price: decimal.NewFromInt(120), EventID: 1},
		20: {ID: 20, Type: "general", Price: decimal.NewFromInt(30), EventID: 2},
	}}
	orders := &fakeOrderRepo{}
	return &bookingFixture{
		svc:    NewBookingService(orders, events, tickets, nil),
		orders: orders,
		events: events,
	}
}

// --- Booking ---

func TestBookTickets_Success(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))

	orders, err := fx.svc.BookTickets(context.Background(), 1, 7, []OrderLine{{TicketID: 10, Quantity: 7}})
	require.NoError(t, err)
	require.Len(t, orders, 1)

	assert.Equal(t, 7, orders[0].Quantity)
	assert.True(t, orders[0].Price.Equal(decimal.NewFromInt(350)), "price should be 50 x 7")
	assert.NotEmpty(t, orders[0].Reference)
	assert.Equal(t, models.StatusOpen, fx.events.events[1].Status)
}

func TestBookTickets_CapacityExceeded_StoreUnchanged(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))

	_, err := fx.svc.BookTickets(context.Background(), 1, 7, []OrderLine{{TicketID: 10, Quantity: 7}})
	require.NoError(t, err)

	_, err = fx.svc.BookTickets(context.Background(), 1, 8, []OrderLine{{TicketID: 10, Quantity: 5}})
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 3, capErr.Remaining)
	assert.Len(t, fx.orders.orders, 1, "rejected request must not leave order rows behind")
}

func TestBookTickets_FillsCapacity_TransitionsSoldOut(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))

	_, err := fx.svc.BookTickets(context.Background(), 1, 7, []OrderLine{{TicketID: 10, Quantity: 7}})
	require.NoError(t, err)

	_, err = fx.svc.BookTickets(context.Background(), 1, 8, []OrderLine{{TicketID: 10, Quantity: 3}})
	require.NoError(t, err)

	assert.Equal(t, models.StatusSoldOut, fx.events.events[1].Status)

	total, _ := fx.orders.SumQuantityForEvent(context.Background(), nil, 1)
	assert.Equal(t, int64(10), total)
}

func TestBookTickets_UnlimitedCapacityNeverRejects(t *testing.T) {
	fx := newBookingFixture(t, nil)

	_, err := fx.svc.BookTickets(context.Background(), 1, 7, []OrderLine{{TicketID: 10, Quantity: 5000}})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, fx.events.events[1].Status)
}

func TestBookTickets_CumulativeAcrossLines(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))

	// 6 fits alone, but 6+5 exceeds 10; the whole request dies.
	_, err := fx.svc.BookTickets(context.Background(), 1, 7, []OrderLine{
		{TicketID: 10, Quantity: 6},
		{TicketID: 11, Quantity: 5},
	})
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 4, capErr.Remaining)
	assert.Empty(t, fx.orders.orders)
}

func TestBookTickets_MultipleLines_OneOrderEach(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))

	orders, err := fx.svc.BookTickets(context.Background(), 1, 7, []OrderLine{
		{TicketID: 10, Quantity: 6},
		{TicketID: 11, Quantity: 4},
	})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.True(t, orders[1].Price.Equal(decimal.NewFromInt(480)))
	assert.Equal(t, models.StatusSoldOut, fx.events.events[1].Status)
}

func TestBookTickets_SkipsNonPositiveQuantities(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))

	orders, err := fx.svc.BookTickets(context.Background(), 1, 7, []OrderLine{
		{TicketID: 10, Quantity: 0},
		{TicketID: 11, Quantity: -3},
		{TicketID: 10, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, 2, orders[0].Quantity)
}

func TestBookTickets_NoPositiveLines(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))

	_, err := fx.svc.BookTickets(context.Background(), 1, 7, []OrderLine{{TicketID: 10, Quantity: 0}})
	assert.ErrorIs(t, err, ErrNoTicketsSelected)

	_, err = fx.svc.BookTickets(context.Background(), 1, 7, nil)
	assert.ErrorIs(t, err, ErrNoTicketsSelected)
	assert.Empty(t, fx.orders.orders)
}

func TestBookTickets_CancelledEventRejectedBeforeInventory(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))
	fx.events.events[1].Status = models.StatusCancelled

	_, err := fx.svc.BookTickets(context.Background(), 1, 7, []OrderLine{{TicketID: 10, Quantity: 1}})
	assert.ErrorIs(t, err, ErrEventNotBookable)
	assert.Empty(t, fx.orders.orders)
}

func TestBookTickets_PastEventRejected(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))
	fx.events.events[1].EventDate = time.Now().AddDate(0, 0, -1)

	_, err := fx.svc.BookTickets(context.Background(), 1, 7, []OrderLine{{TicketID: 10, Quantity: 1}})
	assert.ErrorIs(t, err, ErrEventNotBookable)
}

func TestBookTickets_EventNotFound(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))

	_, err := fx.svc.BookTickets(context.Background(), 99, 7, []OrderLine{{TicketID: 10, Quantity: 1}})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestBookTickets_TicketFromAnotherEvent_Atomic(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))

	_, err := fx.svc.BookTickets(context.Background(), 1, 7, []OrderLine{
		{TicketID: 10, Quantity: 2},
		{TicketID: 20, Quantity: 1}, // belongs to event 2
	})
	assert.ErrorIs(t, err, ErrTicketNotFound)
	assert.Empty(t, fx.orders.orders, "partial lines must be rolled back")
}

// --- Cancellation ---

func TestCancelOrder_Success(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))
	orders, err := fx.svc.BookTickets(context.Background(), 1, 7, []OrderLine{{TicketID: 10, Quantity: 2}})
	require.NoError(t, err)

	require.NoError(t, fx.svc.CancelOrder(context.Background(), orders[0].ID, 7))
	assert.Empty(t, fx.orders.orders)
}

func TestCancelOrder_ReadsAndDeletesInOneTransaction(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))
	orders, err := fx.svc.BookTickets(context.Background(), 1, 7, []OrderLine{{TicketID: 10, Quantity: 2}})
	require.NoError(t, err)

	require.NoError(t, fx.svc.CancelOrder(context.Background(), orders[0].ID, 7))

	// The ownership check and the delete must see the same snapshot, so both
	// have to run on the transaction handle, not the base connection.
	require.Len(t, fx.orders.findByIDTx, 1)
	require.Len(t, fx.orders.deleteTx, 1)
	assert.Same(t, fx.orders.txHandle, fx.orders.findByIDTx[0])
	assert.Same(t, fx.orders.txHandle, fx.orders.deleteTx[0])
}

func TestCancelOrder_NotOwner(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))
	orders, err := fx.svc.BookTickets(context.Background(), 1, 7, []OrderLine{{TicketID: 10, Quantity: 2}})
	require.NoError(t, err)

	err = fx.svc.CancelOrder(context.Background(), orders[0].ID, 8)
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Len(t, fx.orders.orders, 1, "order must remain untouched")
}

func TestCancelOrder_NotFound(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))
	err := fx.svc.CancelOrder(context.Background(), 42, 7)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCancelOrder_DoesNotReopenSoldOut(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))
	orders, err := fx.svc.BookTickets(context.Background(), 1, 7, []OrderLine{{TicketID: 10, Quantity: 10}})
	require.NoError(t, err)
	require.Equal(t, models.StatusSoldOut, fx.events.events[1].Status)

	require.NoError(t, fx.svc.CancelOrder(context.Background(), orders[0].ID, 7))
	// The organizer reopens explicitly; cancellation never flips the status.
	assert.Equal(t, models.StatusSoldOut, fx.events.events[1].Status)
}

// --- Availability ---

func TestGetAvailability(t *testing.T) {
	fx := newBookingFixture(t, intPtr(10))
	_, err := fx.svc.BookTickets(context.Background(), 1, 7, []OrderLine{{TicketID: 10, Quantity: 4}})
	require.NoError(t, err)

	avail, err := fx.svc.GetAvailability(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, avail.Booked)
	require.NotNil(t, avail.Remaining)
	assert.Equal(t, 6, *avail.Remaining)
}

func TestGetAvailability_Unlimited(t *testing.T) {
	fx := newBookingFixture(t, nil)

	avail, err := fx.svc.GetAvailability(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, avail.Remaining)
}
