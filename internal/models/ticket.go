package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Ticket struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Type      string          `gorm:"size:100;not null" json:"type"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	EventID   uint            `gorm:"not null;index" json:"event_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Event  *Event  `gorm:"foreignKey:EventID" json:"-"`
	Orders []Order `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE" json:"-"`
}
