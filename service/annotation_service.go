package service

import (
	"context"
	"fmt"
	"main/core"
)

// AnnotationService persists and retrieves Annotation objects.
type AnnotationService struct {
	backend core.Backend
}

func NewAnnotationService(backend core.Backend) *AnnotationService {
	return &AnnotationService{backend: backend}
}

// CreateAnnotation saves a fresh annotation and returns it with its
// assigned id.
func (s *AnnotationService) CreateAnnotation(ctx context.Context) (*core.Annotation, error) {
	annotation := &core.Annotation{}
	if _, err := s.backend.Save(ctx, annotation); err != nil {
		return nil, fmt.Errorf("save annotation: %w", err)
	}
	return annotation, nil
}

func (s *AnnotationService) GetAnnotation(ctx context.Context, id int64) (*core.Annotation, error) {
	return core.LoadAs[*core.Annotation](ctx, s.backend, id)
}
