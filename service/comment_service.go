package service

import (
	"context"
	"fmt"
	"main/core"

	log "github.com/sirupsen/logrus"
)

// CommentService persists and retrieves Comment objects. The backend is
// injected at construction; nothing below main resolves it globally.
type CommentService struct {
	backend core.Backend
}

func NewCommentService(backend core.Backend) *CommentService {
	return &CommentService{backend: backend}
}

// CreateComment saves a fresh comment and returns it with its assigned id.
func (s *CommentService) CreateComment(ctx context.Context, text string) (*core.Comment, error) {
	comment := &core.Comment{CommentText: text}
	id, err := s.backend.Save(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("save comment: %w", err)
	}
	log.Debugf("Comment created: id=%d", id)
	return comment, nil
}

func (s *CommentService) GetComment(ctx context.Context, id int64) (*core.Comment, error) {
	return core.LoadAs[*core.Comment](ctx, s.backend, id)
}

// UpdateComment overwrites the text of an existing comment. The record
// keeps its id; no duplicate is created.
func (s *CommentService) UpdateComment(ctx context.Context, id int64, text string) (*core.Comment, error) {
	comment, err := core.LoadAs[*core.Comment](ctx, s.backend, id)
	if err != nil {
		return nil, err
	}
	comment.CommentText = text
	if _, err := s.backend.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("save comment %d: %w", id, err)
	}
	return comment, nil
}
