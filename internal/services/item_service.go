package services

import (
	"time"

	"Repokit/internal/models"
	"Repokit/internal/repository"
	"Repokit/internal/result"
)

var itemColumns = map[string]string{
	"id":         "id",
	"box_id":     "box_id",
	"name":       "name",
	"type":       "type",
	"size":       "size",
	"created_on": "created_on",
	"updated_on": "updated_on",
	"deleted_on": "deleted_on",
}

var itemRelations = map[string]string{}

type ItemService interface {
	CreateItem(item *models.Item, actorID *int64) *result.Result[*models.Item]
	CreateItems(items []*models.Item, actorID *int64) *result.Result[[]*models.Item]
	ImportItems(items []*models.Item, actorID *int64) *result.Result[[]*models.Item]
	GetItemByID(id int64, includeDeleted bool) *result.Result[*models.Item]
	GetItemsByBox(boxID int64, includeDeleted bool) *result.Result[[]*models.Item]
	UpdateItem(item *models.Item, actorID *int64) *result.Result[bool]
	UpdateItems(items []*models.Item, actorID *int64) *result.Result[bool]
	DeleteItem(id int64, actorID *int64, hard bool) *result.Result[bool]
	DeleteItems(items []*models.Item, actorID *int64, hard bool) *result.Result[bool]
	RestoreItem(id int64) *result.Result[bool]
	ListItems(q ListQuery) *result.Result[*Page[models.Item]]
	PurgeDeleted(before time.Time) *result.Result[int]
}

type itemServiceImpl struct {
	itemRepo repository.ItemRepository
	boxRepo  repository.BoxRepository
}

func NewItemService(itemRepository repository.ItemRepository, boxRepository repository.BoxRepository) ItemService {
	return &itemServiceImpl{itemRepo: itemRepository, boxRepo: boxRepository}
}

func (s *itemServiceImpl) CreateItem(item *models.Item, actorID *int64) *result.Result[*models.Item] {
	if item != nil {
		if box := s.boxRepo.FindByID(item.BoxID, false); box.HasErrors() {
			return result.Propagate[*models.Item](box)
		}
	}
	return s.itemRepo.Create(item, actorID)
}

// CreateItems inserts items in batches without an enclosing transaction.
func (s *itemServiceImpl) CreateItems(items []*models.Item, actorID *int64) *result.Result[[]*models.Item] {
	return s.itemRepo.CreateMany(items, actorID)
}

// ImportItems bulk inserts items atomically; all of them are written or none.
func (s *itemServiceImpl) ImportItems(items []*models.Item, actorID *int64) *result.Result[[]*models.Item] {
	return s.itemRepo.BulkCreate(items, actorID)
}

func (s *itemServiceImpl) GetItemByID(id int64, includeDeleted bool) *result.Result[*models.Item] {
	return s.itemRepo.FindByID(id, includeDeleted)
}

func (s *itemServiceImpl) GetItemsByBox(boxID int64, includeDeleted bool) *result.Result[[]*models.Item] {
	return s.itemRepo.FindByBoxID(boxID, includeDeleted)
}

func (s *itemServiceImpl) UpdateItem(item *models.Item, actorID *int64) *result.Result[bool] {
	return s.itemRepo.Update(item, actorID)
}

func (s *itemServiceImpl) UpdateItems(items []*models.Item, actorID *int64) *result.Result[bool] {
	return s.itemRepo.BulkUpdate(items, actorID)
}

func (s *itemServiceImpl) DeleteItem(id int64, actorID *int64, hard bool) *result.Result[bool] {
	return s.itemRepo.DeleteByID(id, actorID, !hard)
}

func (s *itemServiceImpl) DeleteItems(items []*models.Item, actorID *int64, hard bool) *result.Result[bool] {
	return s.itemRepo.DeleteMany(items, actorID, 0, !hard)
}

func (s *itemServiceImpl) RestoreItem(id int64) *result.Result[bool] {
	return s.itemRepo.RestoreByID(id)
}

func (s *itemServiceImpl) ListItems(q ListQuery) *result.Result[*Page[models.Item]] {
	return listPage[models.Item](s.itemRepo, q, itemColumns, itemRelations)
}

func (s *itemServiceImpl) PurgeDeleted(before time.Time) *result.Result[int] {
	return s.itemRepo.PurgeDeleted(before)
}
