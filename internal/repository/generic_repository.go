package repository

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"Repokit/internal/localization"
	"Repokit/internal/models"
	"Repokit/internal/result"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// EntityPointer ties a struct type to its pointer, which must implement models.Entity.
type EntityPointer[T any] interface {
	*T
	models.Entity
}

type GenericRepositoryImpl[T any, PT EntityPointer[T]] struct {
	db   *gorm.DB
	ctx  context.Context
	opts Options
}

func NewGenericRepository[T any, PT EntityPointer[T]](db *gorm.DB, opts Options) GenericRepository[T] {
	return &GenericRepositoryImpl[T, PT]{
		db:   db,
		ctx:  context.Background(),
		opts: opts.withDefaults(),
	}
}

func (r *GenericRepositoryImpl[T, PT]) WithContext(ctx context.Context) GenericRepository[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	clone := *r
	clone.ctx = ctx
	return &clone
}

func (r *GenericRepositoryImpl[T, PT]) WithDB(db *gorm.DB) GenericRepository[T] {
	clone := *r
	if db != nil {
		clone.db = db
	}
	return &clone
}

func (r *GenericRepositoryImpl[T, PT]) Transaction(work func(tx *gorm.DB) error) error {
	ctx, cancel := r.context()
	defer cancel()
	return Resilient(ctx, r.db, r.opts.Retry, r.opts.Log, work)
}

func (r *GenericRepositoryImpl[T, PT]) CommandTimeout() time.Duration {
	return r.opts.CommandTimeout
}

func (r *GenericRepositoryImpl[T, PT]) SetCommandTimeout(timeout time.Duration) {
	r.opts.CommandTimeout = timeout
}

func (r *GenericRepositoryImpl[T, PT]) Create(entity *T, createdByID *int64) (res *result.Result[*T]) {
	defer recoverInto(&res)
	if entity == nil {
		return result.Fail[*T](result.MissingEntity, r.opts.Localizer.Get(localization.MissingEntityKey))
	}
	stampCreated(entity, createdByID, r.opts.Now())

	db, cancel := r.session()
	defer cancel()
	if err := db.Create(entity).Error; err != nil {
		return result.FromError[*T](err)
	}
	return result.New(entity)
}

// CreateMany inserts entities in batches of BatchSize. Batches are flushed one by one,
// so a failing batch leaves the earlier ones committed.
func (r *GenericRepositoryImpl[T, PT]) CreateMany(entities []*T, createdByID *int64) (res *result.Result[[]*T]) {
	defer recoverInto(&res)
	created := make([]*T, 0, len(entities))
	if len(entities) == 0 {
		return result.New(created)
	}

	db, cancel := r.session()
	defer cancel()

	now := r.opts.Now()
	batch := make([]*T, 0, r.opts.BatchSize)
	for _, entity := range entities {
		if entity == nil {
			continue
		}
		stampCreated(entity, createdByID, now)
		batch = append(batch, entity)
		if len(batch) == r.opts.BatchSize {
			if err := db.Create(batch).Error; err != nil {
				return result.FromError[[]*T](err)
			}
			created = append(created, batch...)
			batch = make([]*T, 0, r.opts.BatchSize)
		}
	}
	if len(batch) > 0 {
		if err := db.Create(batch).Error; err != nil {
			return result.FromError[[]*T](err)
		}
		created = append(created, batch...)
	}
	return result.New(created)
}

func (r *GenericRepositoryImpl[T, PT]) CreateDistinct(entities []*T, key func(*T) string, createdByID *int64) (res *result.Result[[]*T]) {
	defer recoverInto(&res)
	return r.CreateMany(distinct(entities, key), createdByID)
}

func (r *GenericRepositoryImpl[T, PT]) Update(entity *T, updatedByID *int64) (res *result.Result[bool]) {
	defer recoverInto(&res)
	if entity == nil {
		return result.Fail[bool](result.MissingEntity, r.opts.Localizer.Get(localization.MissingEntityKey))
	}
	stampUpdated(entity, updatedByID, r.opts.Now())

	db, cancel := r.session()
	defer cancel()
	if err := db.Unscoped().Save(entity).Error; err != nil {
		return result.FromError[bool](err)
	}
	return result.New(true)
}

func (r *GenericRepositoryImpl[T, PT]) UpdateMany(entities []*T, updatedByID *int64) (res *result.Result[bool]) {
	defer recoverInto(&res)
	if len(entities) == 0 {
		return result.New(true)
	}

	db, cancel := r.session()
	defer cancel()

	now := r.opts.Now()
	batch := make([]*T, 0, r.opts.BatchSize)
	for _, entity := range entities {
		if entity == nil {
			continue
		}
		stampUpdated(entity, updatedByID, now)
		batch = append(batch, entity)
		if len(batch) == r.opts.BatchSize {
			if err := saveBatch(db, batch); err != nil {
				return result.FromError[bool](err)
			}
			batch = make([]*T, 0, r.opts.BatchSize)
		}
	}
	if err := saveBatch(db, batch); err != nil {
		return result.FromError[bool](err)
	}
	return result.New(true)
}

func (r *GenericRepositoryImpl[T, PT]) Delete(entity *T, deletedByID *int64, soft bool) (res *result.Result[bool]) {
	defer recoverInto(&res)
	if entity == nil {
		return result.Fail[bool](result.MissingEntity, r.opts.Localizer.Get(localization.MissingEntityKey))
	}
	deletable, ok := any(entity).(models.Deletable)
	if soft && !ok {
		return result.Fail[bool](result.SoftDeletionNotIDeleteable,
			r.opts.Localizer.Get(localization.SoftDeletionNotIDeleteableKey, r.entityName()))
	}

	db, cancel := r.session()
	defer cancel()

	var err error
	if soft {
		deletable.StampDeleted(deletedByID, r.opts.Now())
		err = db.Unscoped().Save(entity).Error
	} else {
		err = db.Unscoped().Delete(entity).Error
	}
	if err != nil {
		return result.FromError[bool](err)
	}
	return result.New(true)
}

// DeleteByID looks the entity up including soft-deleted rows, so deleting an already
// soft-deleted row hard still works.
func (r *GenericRepositoryImpl[T, PT]) DeleteByID(id int64, deletedByID *int64, soft bool) (res *result.Result[bool]) {
	defer recoverInto(&res)
	found := r.FindByID(id, true)
	if found.HasErrors() {
		return result.Propagate[bool](found)
	}
	return r.Delete(found.ResultObject, deletedByID, soft)
}

// DeleteMany records a MissingEntity error for nil entries and carries on, but stops at
// the first entity that cannot be soft deleted. Batches flushed before that stay deleted.
func (r *GenericRepositoryImpl[T, PT]) DeleteMany(entities []*T, deletedByID *int64, batchSize int, soft bool) (res *result.Result[bool]) {
	defer recoverInto(&res)
	res = result.New(false)
	if batchSize <= 0 {
		batchSize = r.opts.BatchSize
	}

	db, cancel := r.session()
	defer cancel()

	now := r.opts.Now()
	batch := make([]*T, 0, batchSize)
	for _, entity := range entities {
		if entity == nil {
			res.AddError(result.MissingEntity, r.opts.Localizer.Get(localization.MissingEntityKey))
			continue
		}
		deletable, ok := any(entity).(models.Deletable)
		if soft && !ok {
			return res.AddError(result.SoftDeletionNotIDeleteable,
				r.opts.Localizer.Get(localization.SoftDeletionNotIDeleteableKey, r.entityName()))
		}
		if soft {
			deletable.StampDeleted(deletedByID, now)
		}
		batch = append(batch, entity)
		if len(batch) == batchSize {
			if err := deleteBatch(db, batch, soft); err != nil {
				return res.AddErr(err)
			}
			batch = make([]*T, 0, batchSize)
		}
	}
	if err := deleteBatch(db, batch, soft); err != nil {
		return res.AddErr(err)
	}
	res.ResultObject = !res.HasErrors()
	return res
}

func (r *GenericRepositoryImpl[T, PT]) Restore(entity *T) (res *result.Result[bool]) {
	defer recoverInto(&res)
	if entity == nil {
		return result.Fail[bool](result.MissingEntity, r.opts.Localizer.Get(localization.MissingEntityKey))
	}
	if deletable, ok := any(entity).(models.Deletable); ok {
		deletable.ClearDeleted()
	}

	db, cancel := r.session()
	defer cancel()
	if err := db.Unscoped().Save(entity).Error; err != nil {
		return result.FromError[bool](err)
	}
	return result.New(true)
}

func (r *GenericRepositoryImpl[T, PT]) RestoreByID(id int64) (res *result.Result[bool]) {
	defer recoverInto(&res)
	found := r.FindByID(id, true)
	if found.HasErrors() {
		return result.Propagate[bool](found)
	}
	return r.Restore(found.ResultObject)
}

func (r *GenericRepositoryImpl[T, PT]) FindByID(id int64, ignoreQueryFilters bool) (res *result.Result[*T]) {
	defer recoverInto(&res)
	db, cancel := r.session()
	defer cancel()
	if ignoreQueryFilters {
		db = db.Unscoped()
	}

	var entity T
	err := db.First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return result.Fail[*T](result.EntityNotFound,
			r.opts.Localizer.Get(localization.EntityNotFoundKey, r.entityName(), id))
	}
	if err != nil {
		return result.FromError[*T](err)
	}
	return result.New(&entity)
}

// PurgeDeleted hard deletes every row soft deleted before the cutoff. Types without
// soft deletion have nothing to purge.
func (r *GenericRepositoryImpl[T, PT]) PurgeDeleted(before time.Time) (res *result.Result[int]) {
	defer recoverInto(&res)
	if _, ok := any(new(T)).(models.Deletable); !ok {
		return result.New(0)
	}

	stale := r.FindAll(QueryOptions{
		Filter:             NewQueryFilter("deleted_on IS NOT NULL AND deleted_on < ?", before),
		IgnoreQueryFilters: true,
	})
	if stale.HasErrors() {
		return result.Propagate[int](stale)
	}
	if len(stale.ResultObject) == 0 {
		return result.New(0)
	}

	deleted := r.BulkDelete(stale.ResultObject, nil, false)
	if deleted.HasErrors() {
		return result.Propagate[int](deleted)
	}
	return result.New(len(stale.ResultObject))
}

// session returns a handle bound to the repository context, limited by the command timeout.
func (r *GenericRepositoryImpl[T, PT]) session() (*gorm.DB, context.CancelFunc) {
	ctx, cancel := r.context()
	return r.db.WithContext(ctx), cancel
}

func (r *GenericRepositoryImpl[T, PT]) context() (context.Context, context.CancelFunc) {
	ctx := r.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if r.opts.CommandTimeout > 0 {
		return context.WithTimeout(ctx, r.opts.CommandTimeout)
	}
	return ctx, func() {}
}

func (r *GenericRepositoryImpl[T, PT]) entityName() string {
	return reflect.TypeOf((*T)(nil)).Elem().Name()
}

func saveBatch[T any](db *gorm.DB, batch []*T) error {
	if len(batch) == 0 {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, entity := range batch {
			if err := tx.Unscoped().Save(entity).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func deleteBatch[T any](db *gorm.DB, batch []*T, soft bool) error {
	if len(batch) == 0 {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, entity := range batch {
			var err error
			if soft {
				err = tx.Unscoped().Save(entity).Error
			} else {
				err = tx.Unscoped().Delete(entity).Error
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func stampCreated(entity any, by *int64, now time.Time) {
	if creatable, ok := entity.(models.Creatable); ok {
		creatable.StampCreated(by, now)
	}
}

func stampUpdated(entity any, by *int64, now time.Time) {
	if updatable, ok := entity.(models.Updatable); ok {
		updatable.StampUpdated(by, now)
	}
}

// distinct keeps the first entity seen for every key, preserving order.
func distinct[T any](entities []*T, key func(*T) string) []*T {
	seen := make(map[string]struct{}, len(entities))
	out := make([]*T, 0, len(entities))
	for _, entity := range entities {
		if entity == nil {
			continue
		}
		k := key(entity)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, entity)
	}
	return out
}

func recoverInto[V any](res **result.Result[V]) {
	if p := recover(); p != nil {
		*res = result.Fail[V](result.Panic, fmt.Sprint(p))
	}
}
