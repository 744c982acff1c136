package dto

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateEventRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	EventDate    string  `json:"event_date"` // YYYY-MM-DD
	StartTime    string  `json:"start_time"` // HH:MM
	EndTime      string  `json:"end_time"`
	Venue        string  `json:"venue"`
	Genre        string  `json:"genre"`
	Organisation string  `json:"organisation"`
	Attendees    *int    `json:"attendees,omitempty"`
	TicketType   string  `json:"ticket_type,omitempty"`
	TicketPrice  *string `json:"ticket_price,omitempty"`
}

type CreateTicketRequest struct {
	Type  string `json:"type"`
	Price string `json:"price"`
}

type OrderLineRequest struct {
	TicketID uint `json:"ticket_id"`
	Quantity int  `json:"quantity"`
}

type BookTicketsRequest struct {
	Lines []OrderLineRequest `json:"lines"`
}

type CommentRequest struct {
	Content string `json:"content"`
}
