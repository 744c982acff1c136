package handler

import (
	"net/http"
	"strconv"

	"gigseat/internal/dto"
	"gigseat/internal/middleware"
	"gigseat/internal/service"

	"github.com/labstack/echo/v4"
)

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

func (h *CommentHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/:id/comments", h.ListComments)
}

func (h *CommentHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.POST("/:id/comments", h.AddComment)
}

func (h *CommentHandler) AddComment(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	comment, err := h.svc.AddComment(c.Request().Context(), uint(eventID), userID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

func (h *CommentHandler) ListComments(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	comments, err := h.svc.ListComments(c.Request().Context(), uint(eventID))
	if err != nil {
		return err
	}

	resp := make([]dto.CommentResponse, len(comments))
	for i := range comments {
		resp[i] = dto.ToCommentResponse(&comments[i])
	}
	return c.JSON(http.StatusOK, resp)
}
