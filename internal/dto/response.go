package dto

import (
	"time"

	"gigseat/internal/models"

	"github.com/shopspring/decimal"
)

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type TicketResponse struct {
	ID    uint            `json:"id"`
	Type  string          `json:"type"`
	Price decimal.Decimal `json:"price"`
}

type EventResponse struct {
	ID           uint               `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	EventDate    string             `json:"event_date"`
	StartTime    string             `json:"start_time,omitempty"`
	EndTime      string             `json:"end_time,omitempty"`
	Venue        string             `json:"venue"`
	Genre        models.Genre       `json:"genre,omitempty"`
	Organisation string             `json:"organisation,omitempty"`
	Attendees    *int               `json:"attendees,omitempty"`
	Status       models.EventStatus `json:"status"`
	Poster       string             `json:"poster,omitempty"`
	UserID       uint               `json:"user_id"`
	Tickets      []TicketResponse   `json:"tickets,omitempty"`
	Images       []string           `json:"images,omitempty"`
}

type EventListResponse struct {
	Events     []EventResponse `json:"events"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int64           `json:"total_pages"`
}

type AvailabilityResponse struct {
	EventID   uint               `json:"event_id"`
	Status    models.EventStatus `json:"status"`
	Attendees *int               `json:"attendees,omitempty"`
	Booked    int                `json:"booked"`
	Remaining *int               `json:"remaining,omitempty"`
}

type OrderResponse struct {
	ID         uint            `json:"id"`
	Reference  string          `json:"reference"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	EventID    uint            `json:"event_id"`
	EventTitle string          `json:"event_title,omitempty"`
	TicketID   uint            `json:"ticket_id"`
	TicketType string          `json:"ticket_type,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	// Remaining is set on capacity rejections so the client can offer the
	// exact seat count still available.
	Remaining *int `json:"remaining,omitempty"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func ToTicketResponse(t *models.Ticket) TicketResponse {
	return TicketResponse{ID: t.ID, Type: t.Type, Price: t.Price}
}

func ToEventResponse(e *models.Event) EventResponse {
	resp := EventResponse{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		EventDate:    e.EventDate.Format("2006-01-02"),
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		Venue:        e.Venue,
		Genre:        e.Genre,
		Organisation: string(e.Organisation),
		Attendees:    e.Attendees,
		Status:       e.Status,
		Poster:       e.Poster,
		UserID:       e.UserID,
	}
	for i := range e.Tickets {
		resp.Tickets = append(resp.Tickets, ToTicketResponse(&e.Tickets[i]))
	}
	for _, img := range e.Images {
		resp.Images = append(resp.Images, img.Filename)
	}
	return resp
}

func ToOrderResponse(o *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:        o.ID,
		Reference: o.Reference,
		Quantity:  o.Quantity,
		Price:     o.Price,
		EventID:   o.EventID,
		TicketID:  o.TicketID,
		CreatedAt: o.CreatedAt,
	}
	if o.Event != nil {
		resp.EventTitle = o.Event.Title
	}
	if o.Ticket != nil {
		resp.TicketType = o.Ticket.Type
	}
	return resp
}

func ToCommentResponse(c *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	if c.User != nil {
		resp.Username = c.User.Username
	}
	return resp
}
