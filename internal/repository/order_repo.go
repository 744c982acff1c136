package repository

import (
	"context"

	"gigseat/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	// FindByID loads one order with its event and ticket; a nil tx reads
	// outside any transaction.
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error)
	FindByEventID(ctx context.Context, eventID uint) ([]models.Order, error)
	// FindByUser returns the user's orders joined with their event, upcoming
	// (event date today or later) or past depending on the flag.
	FindByUser(ctx context.Context, userID uint, upcoming bool) ([]models.Order, error)
	// SumQuantityForEvent totals booked quantities; a nil tx reads outside
	// any transaction.
	SumQuantityForEvent(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	// Transaction runs fn inside one storage transaction; every write in fn is
	// persisted on nil return and discarded otherwise.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var order models.Order
	err := db.WithContext(ctx).
		Preload("Event").
		Preload("Ticket").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByEventID(ctx context.Context, eventID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByUser(ctx context.Context, userID uint, upcoming bool) ([]models.Order, error) {
	cmp := "<"
	if upcoming {
		cmp = ">="
	}
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Joins("JOIN events ON events.id = orders.event_id").
		Where("orders.user_id = ? AND events.event_date "+cmp+" CURRENT_DATE", userID).
		Preload("Event").
		Preload("Ticket").
		Order("orders.created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) SumQuantityForEvent(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var total int64
	err := db.WithContext(ctx).
		Model(&models.Order{}).
		Where("event_id = ?", eventID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *orderRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Order{}, id).Error
}

func (r *orderRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
