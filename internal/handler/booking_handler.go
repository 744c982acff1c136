package handler

import (
	"net/http"
	"strconv"

	"gigseat/internal/dto"
	"gigseat/internal/middleware"
	"gigseat/internal/service"

	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterPublicRoutes(e *echo.Echo) {
	e.GET("/api/v1/events/:id/availability", h.GetAvailability)
}

func (h *BookingHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.POST("/events/:id/orders", h.BookTickets)
	g.DELETE("/orders/:id", h.CancelOrder)
	g.GET("/orders/upcoming", h.ListUpcoming)
	g.GET("/orders/history", h.ListHistory)
}

func (h *BookingHandler) BookTickets(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.BookTicketsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	lines := make([]service.OrderLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = service.OrderLine{TicketID: l.TicketID, Quantity: l.Quantity}
	}

	orders, err := h.svc.BookTickets(c.Request().Context(), uint(eventID), userID, lines)
	if err != nil {
		return err
	}

	resp := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		resp[i] = dto.ToOrderResponse(&orders[i])
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *BookingHandler) CancelOrder(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	if err := h.svc.CancelOrder(c.Request().Context(), uint(orderID), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BookingHandler) GetAvailability(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	avail, err := h.svc.GetAvailability(c.Request().Context(), uint(eventID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.AvailabilityResponse{
		EventID:   avail.Event.ID,
		Status:    avail.Event.Status,
		Attendees: avail.Event.Attendees,
		Booked:    avail.Booked,
		Remaining: avail.Remaining,
	})
}

func (h *BookingHandler) ListUpcoming(c echo.Context) error {
	return h.listOrders(c, true)
}

func (h *BookingHandler) ListHistory(c echo.Context) error {
	return h.listOrders(c, false)
}

func (h *BookingHandler) listOrders(c echo.Context, upcoming bool) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	list := h.svc.ListPastOrders
	if upcoming {
		list = h.svc.ListUpcomingOrders
	}
	found, err := list(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	orders := make([]dto.OrderResponse, len(found))
	for i := range found {
		orders[i] = dto.ToOrderResponse(&found[i])
	}
	return c.JSON(http.StatusOK, orders)
}
