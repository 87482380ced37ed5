package services

import (
	"encoding/json"
	"time"

	"Repokit/internal/models"
	"Repokit/internal/repository"
	"Repokit/internal/result"

	"gorm.io/gorm"
)

var boxColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"created_on": "created_on",
	"updated_on": "updated_on",
	"deleted_on": "deleted_on",
}

var boxRelations = map[string]string{
	"items": "Items",
}

type BoxService interface {
	CreateBox(name string, properties map[string]interface{}, actorID *int64) *result.Result[*models.Box]
	CreateBoxes(boxes []*models.Box, actorID *int64) *result.Result[[]*models.Box]
	GetBoxByID(id int64, includeDeleted bool) *result.Result[*models.Box]
	GetBoxByName(name string) *result.Result[*models.Box]
	UpdateBox(id int64, name string, properties map[string]interface{}, actorID *int64) *result.Result[*models.Box]
	DeleteBox(id int64, actorID *int64, hard bool) *result.Result[bool]
	RestoreBox(id int64) *result.Result[bool]
	ListBoxes(q ListQuery) *result.Result[*Page[models.Box]]
	PurgeDeleted(before time.Time) *result.Result[int]
}

func NewBoxService(boxRepo repository.BoxRepository, itemRepo repository.ItemRepository) BoxService {
	return &boxServiceImpl{boxRepo: boxRepo, itemRepo: itemRepo}
}

type boxServiceImpl struct {
	boxRepo  repository.BoxRepository
	itemRepo repository.ItemRepository
}

func (s *boxServiceImpl) CreateBox(name string, properties map[string]interface{}, actorID *int64) *result.Result[*models.Box] {
	propertiesJSON, err := json.Marshal(properties)
	if err != nil {
		return result.FromError[*models.Box](err)
	}
	box := &models.Box{Name: name, Properties: propertiesJSON}
	return s.boxRepo.Create(box, actorID)
}

// CreateBoxes bulk inserts boxes, keeping the first box of every name.
func (s *boxServiceImpl) CreateBoxes(boxes []*models.Box, actorID *int64) *result.Result[[]*models.Box] {
	return s.boxRepo.BulkCreateDistinct(boxes, func(b *models.Box) string { return b.Name }, actorID)
}

func (s *boxServiceImpl) GetBoxByID(id int64, includeDeleted bool) *result.Result[*models.Box] {
	return s.boxRepo.FindByID(id, includeDeleted)
}

func (s *boxServiceImpl) GetBoxByName(name string) *result.Result[*models.Box] {
	return s.boxRepo.FindByName(name)
}

func (s *boxServiceImpl) UpdateBox(id int64, name string, properties map[string]interface{}, actorID *int64) *result.Result[*models.Box] {
	found := s.boxRepo.FindByID(id, false)
	if found.HasErrors() {
		return found
	}
	box := found.ResultObject
	box.Name = name
	propertiesJSON, err := json.Marshal(properties)
	if err != nil {
		return result.FromError[*models.Box](err)
	}
	box.Properties = propertiesJSON

	updated := s.boxRepo.Update(box, actorID)
	if updated.HasErrors() {
		return result.Propagate[*models.Box](updated)
	}
	return result.New(box)
}

// DeleteBox deletes the box together with its items in one transaction. A soft delete
// stamps the box first so RestoreBox can tell which items went away with it, and leaves
// a box that is already soft deleted untouched. A hard delete removes every item first.
func (s *boxServiceImpl) DeleteBox(id int64, actorID *int64, hard bool) *result.Result[bool] {
	return s.inTransaction(func(boxes repository.GenericRepository[models.Box], items repository.GenericRepository[models.Item]) *result.Result[bool] {
		found := boxes.FindByID(id, true)
		if found.HasErrors() {
			return result.Propagate[bool](found)
		}
		box := found.ResultObject
		if !hard {
			if box.IsDeleted() {
				return result.New(true)
			}
			if deleted := boxes.Delete(box, actorID, true); deleted.HasErrors() {
				return deleted
			}
		}

		contents := boxContents(items, id, hard)
		if contents.HasErrors() {
			return result.Propagate[bool](contents)
		}
		deleted := items.BulkDelete(contents.ResultObject, actorID, !hard)
		if deleted.HasErrors() || !hard {
			return deleted
		}
		return boxes.Delete(box, actorID, false)
	})
}

// RestoreBox restores the box and the items that were soft deleted along with it.
func (s *boxServiceImpl) RestoreBox(id int64) *result.Result[bool] {
	return s.inTransaction(func(boxes repository.GenericRepository[models.Box], items repository.GenericRepository[models.Item]) *result.Result[bool] {
		found := boxes.FindByID(id, true)
		if found.HasErrors() {
			return result.Propagate[bool](found)
		}
		box := found.ResultObject
		deletedOn := box.DeletedOn

		restored := boxes.Restore(box)
		if restored.HasErrors() || !deletedOn.Valid {
			return restored
		}

		contents := boxContents(items, id, true)
		if contents.HasErrors() {
			return result.Propagate[bool](contents)
		}
		for _, item := range contents.ResultObject {
			if item.DeletedOn.Valid && !item.DeletedOn.Time.Before(deletedOn.Time) {
				if r := items.Restore(item); r.HasErrors() {
					return r
				}
			}
		}
		return restored
	})
}

func (s *boxServiceImpl) ListBoxes(q ListQuery) *result.Result[*Page[models.Box]] {
	return listPage[models.Box](s.boxRepo, q, boxColumns, boxRelations)
}

// PurgeDeleted hard deletes boxes soft deleted before the cutoff. Their items go first,
// whatever their own state, so no foreign key is left dangling.
func (s *boxServiceImpl) PurgeDeleted(before time.Time) *result.Result[int] {
	var purged int
	done := s.inTransaction(func(boxes repository.GenericRepository[models.Box], items repository.GenericRepository[models.Item]) *result.Result[bool] {
		purged = 0
		stale := boxes.FindAll(repository.QueryOptions{
			Filter:             repository.NewQueryFilter("deleted_on IS NOT NULL AND deleted_on < ?", before),
			IgnoreQueryFilters: true,
		})
		if stale.HasErrors() {
			return result.Propagate[bool](stale)
		}
		if len(stale.ResultObject) == 0 {
			return result.New(true)
		}

		ids := make([]int64, 0, len(stale.ResultObject))
		for _, box := range stale.ResultObject {
			ids = append(ids, box.ID)
		}
		contents := items.FindAll(repository.QueryOptions{
			Filter:             repository.NewQueryFilter("box_id IN ?", ids),
			IgnoreQueryFilters: true,
		})
		if contents.HasErrors() {
			return result.Propagate[bool](contents)
		}
		if deleted := items.BulkDelete(contents.ResultObject, nil, false); deleted.HasErrors() {
			return deleted
		}
		if deleted := boxes.BulkDelete(stale.ResultObject, nil, false); deleted.HasErrors() {
			return deleted
		}
		purged = len(stale.ResultObject)
		return result.New(true)
	})
	if done.HasErrors() {
		return result.Propagate[int](done)
	}
	return result.New(purged)
}

// inTransaction runs work against transaction-bound copies of both repositories. The
// Result work returned is kept, so its error keys survive the rollback.
func (s *boxServiceImpl) inTransaction(work func(boxes repository.GenericRepository[models.Box], items repository.GenericRepository[models.Item]) *result.Result[bool]) *result.Result[bool] {
	var res *result.Result[bool]
	err := s.boxRepo.Transaction(func(tx *gorm.DB) error {
		res = work(s.boxRepo.WithDB(tx), s.itemRepo.WithDB(tx))
		return res.Err()
	})
	if res != nil && res.HasErrors() {
		return res
	}
	if err != nil {
		return result.FromError[bool](err)
	}
	return res
}

func boxContents(items repository.GenericRepository[models.Item], boxID int64, includeDeleted bool) *result.Result[[]*models.Item] {
	return items.FindAll(repository.QueryOptions{
		Filter:             repository.NewQueryFilter("box_id = ?", boxID),
		OrderBy:            []string{"id"},
		IgnoreQueryFilters: includeDeleted,
	})
}
