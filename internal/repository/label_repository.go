package repository

import (
	"Repokit/internal/models"

	"gorm.io/gorm"
)

type LabelRepository interface {
	GenericRepository[models.Label]
}

func NewLabelRepository(db *gorm.DB, opts Options) LabelRepository {
	return NewGenericRepository[models.Label](db, opts)
}
