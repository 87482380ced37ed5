package repository

import (
	"Repokit/internal/models"
	"Repokit/internal/result"

	"gorm.io/gorm"
)

type ItemRepository interface {
	GenericRepository[models.Item]
	FindByBoxID(boxID int64, includeDeleted bool) *result.Result[[]*models.Item]
}

type ItemRepositoryImpl struct {
	GenericRepository[models.Item]
}

func NewItemRepository(db *gorm.DB, opts Options) ItemRepository {
	return &ItemRepositoryImpl{
		GenericRepository: NewGenericRepository[models.Item](db, opts),
	}
}

func (r *ItemRepositoryImpl) FindByBoxID(boxID int64, includeDeleted bool) *result.Result[[]*models.Item] {
	return r.FindAll(QueryOptions{
		Filter:             NewQueryFilter("box_id = ?", boxID),
		OrderBy:            []string{"id"},
		IgnoreQueryFilters: includeDeleted,
	})
}
