package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	// Price is ticket.Price * Quantity captured at booking time.
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	EventID   uint            `gorm:"not null;index" json:"event_id"`
	TicketID  uint            `gorm:"not null;index" json:"ticket_id"`
	CreatedAt time.Time       `json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID" json:"-"`
	Event  *Event  `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Ticket *Ticket `gorm:"foreignKey:TicketID" json:"ticket,omitempty"`
}
