package repository

import (
	"Repokit/internal/localization"
	"Repokit/internal/models"
	"Repokit/internal/result"

	"gorm.io/gorm"
)

type BoxRepository interface {
	GenericRepository[models.Box]
	FindByName(name string) *result.Result[*models.Box]
}

type BoxRepositoryImpl struct {
	GenericRepository[models.Box]
	opts Options
}

func NewBoxRepository(db *gorm.DB, opts Options) BoxRepository {
	opts = opts.withDefaults()
	return &BoxRepositoryImpl{
		GenericRepository: NewGenericRepository[models.Box](db, opts),
		opts:              opts,
	}
}

// FindByName returns the live box with the given name.
func (r *BoxRepositoryImpl) FindByName(name string) *result.Result[*models.Box] {
	one := 1
	found := r.FindAll(QueryOptions{Filter: NewQueryFilter("name = ?", name), Take: &one})
	if found.HasErrors() {
		return result.Propagate[*models.Box](found)
	}
	if len(found.ResultObject) == 0 {
		return result.Fail[*models.Box](result.EntityNotFound,
			r.opts.Localizer.Get(localization.EntityNotFoundKey, "Box", name))
	}
	return result.New(found.ResultObject[0])
}
