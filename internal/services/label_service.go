package services

import (
	"Repokit/internal/models"
	"Repokit/internal/repository"
	"Repokit/internal/result"
)

var labelColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"color":      "color",
	"created_on": "created_on",
}

var labelRelations = map[string]string{}

type LabelService interface {
	CreateLabels(labels []*models.Label, actorID *int64) *result.Result[[]*models.Label]
	DeleteLabel(id int64, actorID *int64, hard bool) *result.Result[bool]
	ListLabels(q ListQuery) *result.Result[*Page[models.Label]]
}

type labelServiceImpl struct {
	labelRepo repository.LabelRepository
}

func NewLabelService(labelRepository repository.LabelRepository) LabelService {
	return &labelServiceImpl{labelRepo: labelRepository}
}

// CreateLabels inserts one label per distinct name; later duplicates are dropped.
func (s *labelServiceImpl) CreateLabels(labels []*models.Label, actorID *int64) *result.Result[[]*models.Label] {
	return s.labelRepo.CreateDistinct(labels, func(l *models.Label) string { return l.Name }, actorID)
}

// DeleteLabel fails with SoftDeletionNotIDeleteable unless hard is set: labels are not soft deletable.
func (s *labelServiceImpl) DeleteLabel(id int64, actorID *int64, hard bool) *result.Result[bool] {
	return s.labelRepo.DeleteByID(id, actorID, !hard)
}

func (s *labelServiceImpl) ListLabels(q ListQuery) *result.Result[*Page[models.Label]] {
	return listPage[models.Label](s.labelRepo, q, labelColumns, labelRelations)
}
