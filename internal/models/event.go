package models

import (
	"fmt"
	"time"
)

type EventStatus string

const (
	StatusOpen      EventStatus = "open"
	StatusSoldOut   EventStatus = "sold out"
	StatusCancelled EventStatus = "cancelled"
	StatusInactive  EventStatus = "inactive"
)

type Genre string

const (
	GenreRock       Genre = "rock"
	GenrePop        Genre = "pop"
	GenreJazz       Genre = "jazz"
	GenreClassical  Genre = "classical"
	GenreElectronic Genre = "electronic"
	GenreHipHop     Genre = "hip hop"
	GenreCountry    Genre = "country"
	GenreOther      Genre = "other"
)

type OrganisationType string

const (
	OrganisationSolo      OrganisationType = "solo"
	OrganisationBand      OrganisationType = "band"
	OrganisationOrchestra OrganisationType = "orchestra"
	OrganisationDJ        OrganisationType = "dj"
)

// ParseEventStatus fails closed: unknown input is an error, never a silent no-op.
func ParseEventStatus(s string) (EventStatus, error) {
	switch EventStatus(s) {
	case StatusOpen, StatusSoldOut, StatusCancelled, StatusInactive:
		return EventStatus(s), nil
	}
	return "", fmt.Errorf("unknown event status %q", s)
}

func ParseGenre(s string) (Genre, error) {
	switch Genre(s) {
	case GenreRock, GenrePop, GenreJazz, GenreClassical, GenreElectronic, GenreHipHop, GenreCountry, GenreOther:
		return Genre(s), nil
	}
	return "", fmt.Errorf("unknown genre %q", s)
}

func ParseOrganisationType(s string) (OrganisationType, error) {
	switch OrganisationType(s) {
	case OrganisationSolo, OrganisationBand, OrganisationOrchestra, OrganisationDJ:
		return OrganisationType(s), nil
	}
	return "", fmt.Errorf("unknown organisation type %q", s)
}

type Event struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Title        string           `gorm:"size:200;not null" json:"title"`
	Description  string           `gorm:"size:1000" json:"description"`
	EventDate    time.Time        `gorm:"not null" json:"event_date"`
	StartTime    string           `gorm:"size:5" json:"start_time"`
	EndTime      string           `gorm:"size:5" json:"end_time"`
	Venue        string           `gorm:"size:200;not null" json:"venue"`
	Genre        Genre            `gorm:"type:varchar(20)" json:"genre"`
	Organisation OrganisationType `gorm:"type:varchar(20)" json:"organisation"`
	// Attendees is the sellable capacity. Nil means unlimited.
	Attendees *int        `json:"attendees,omitempty"`
	Status    EventStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	Poster    string      `gorm:"size:255" json:"poster,omitempty"`
	UserID    uint        `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	User     *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tickets  []Ticket     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"tickets,omitempty"`
	Orders   []Order      `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment    `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	Images   []EventImage `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

type EventImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;index" json:"event_id"`
	Filename  string    `gorm:"size:255;not null" json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}
