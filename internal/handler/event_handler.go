package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gigseat/internal/dto"
	"gigseat/internal/middleware"
	"gigseat/internal/models"
	"gigseat/internal/service"
	"gigseat/pkg/upload"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type EventHandler struct {
	svc       service.EventService
	uploadDir string
}

func NewEventHandler(svc service.EventService, uploadDir string) *EventHandler {
	return &EventHandler{svc: svc, uploadDir: uploadDir}
}

func (h *EventHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("", h.ListEvents)
	g.GET("/:id", h.GetEvent)
}

func (h *EventHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.POST("", h.CreateEvent)
	g.PUT("/:id", h.UpdateEvent)
	g.DELETE("/:id", h.DeleteEvent)
	g.POST("/:id/cancel", h.ToggleCancelled)
	g.POST("/:id/tickets", h.AddTicket)
	g.POST("/:id/images", h.UploadImage)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event, err := eventFromRequest(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	event.UserID = userID

	var firstTicket *models.Ticket
	if req.TicketType != "" && req.TicketPrice != nil {
		price, err := decimal.NewFromString(*req.TicketPrice)
		if err != nil || price.IsNegative() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket price")
		}
		firstTicket = &models.Ticket{Type: req.TicketType, Price: price}
	}

	if err := h.svc.CreateEvent(c.Request().Context(), event, firstTicket); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	event, err := h.svc.GetEvent(c.Request().Context(), uint(id))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 10
	}

	events, total, err := h.svc.ListEvents(c.Request().Context(), service.ListEventsQuery{
		Genre:  c.QueryParam("genre"),
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	resp := dto.EventListResponse{
		Events:     make([]dto.EventResponse, len(events)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
	for i := range events {
		resp.Events[i] = dto.ToEventResponse(&events[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event, err := eventFromRequest(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	event.ID = uint(id)

	if err := h.svc.UpdateEvent(c.Request().Context(), event, userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	if err := h.svc.DeleteEvent(c.Request().Context(), uint(id), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) ToggleCancelled(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	event, err := h.svc.ToggleCancelled(c.Request().Context(), uint(id), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) AddTicket(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.CreateTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Type == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ticket type is required")
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket price")
	}

	ticket := &models.Ticket{Type: req.Type, Price: price, EventID: uint(id)}
	if err := h.svc.AddTicket(c.Request().Context(), ticket, userID); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToTicketResponse(ticket))
}

func (h *EventHandler) UploadImage(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}

	filename, err := upload.SaveImage(fileHeader, h.uploadDir)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	poster := c.QueryParam("poster") == "true"
	if err := h.svc.AttachImage(c.Request().Context(), uint(id), userID, filename, poster); err != nil {
		_ = upload.Delete(h.uploadDir, filename)
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"filename": filename})
}

func eventFromRequest(req *dto.CreateEventRequest) (*models.Event, error) {
	if req.Title == "" || req.Venue == "" {
		return nil, errors.New("title and venue are required")
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, errors.New("invalid event date, expected YYYY-MM-DD")
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   eventDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Venue:       req.Venue,
		Attendees:   req.Attendees,
	}
	if req.Attendees != nil && *req.Attendees <= 0 {
		return nil, errors.New("attendees must be positive when set")
	}
	if req.Genre != "" {
		genre, err := models.ParseGenre(req.Genre)
		if err != nil {
			return nil, err
		}
		event.Genre = genre
	}
	if req.Organisation != "" {
		org, err := models.ParseOrganisationType(req.Organisation)
		if err != nil {
			return nil, err
		}
		event.Organisation = org
	}
	return event, nil
}
