package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gigseat/internal/models"
	"gigseat/internal/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	AddComment(ctx context.Context, eventID, userID uint, content string) (*models.Comment, error)
	ListComments(ctx context.Context, eventID uint) ([]models.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	eventRepo   repository.EventRepository
}

func NewCommentService(commentRepo repository.CommentRepository, eventRepo repository.EventRepository) CommentService {
	return &commentService{commentRepo: commentRepo, eventRepo: eventRepo}
}

func (s *commentService) AddComment(ctx context.Context, eventID, userID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", ErrInvalidRequest)
	}

	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		UserID:  userID,
		EventID: eventID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) ListComments(ctx context.Context, eventID uint) ([]models.Comment, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return s.commentRepo.FindByEventID(ctx, eventID)
}
