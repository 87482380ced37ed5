package repository

import (
	"math"

	"Repokit/internal/models"
	"Repokit/internal/result"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BulkCreate inserts entities in batches of BulkBatchSize inside one resilient transaction.
// Entities without an identity get a placeholder of math.MinInt64+index until their batch
// is written; the database identities are read back into the entities on insert.
func (r *GenericRepositoryImpl[T, PT]) BulkCreate(entities []*T, createdByID *int64) (res *result.Result[[]*T]) {
	defer recoverInto(&res)
	entities = compact(entities)
	if len(entities) == 0 {
		return result.New(entities)
	}

	now := r.opts.Now()
	placeholder := make([]bool, len(entities))
	for i, entity := range entities {
		stampCreated(entity, createdByID, now)
		if PT(entity).GetID() == 0 {
			PT(entity).SetID(math.MinInt64 + int64(i))
			placeholder[i] = true
		}
	}

	ctx, cancel := r.context()
	defer cancel()
	err := Resilient(ctx, r.db, r.opts.Retry, r.opts.Log, func(tx *gorm.DB) error {
		for start := 0; start < len(entities); start += r.opts.BulkBatchSize {
			end := min(start+r.opts.BulkBatchSize, len(entities))
			// identities read back by a rolled back attempt must not leak into a replay
			for i := start; i < end; i++ {
				if placeholder[i] {
					PT(entities[i]).SetID(0)
				}
			}
			if err := tx.Omit(clause.Associations).Create(entities[start:end]).Error; err != nil {
				return errors.Wrapf(err, "bulk insert of %s rows %d-%d", r.entityName(), start, end)
			}
		}
		return nil
	})
	if err != nil {
		for i, entity := range entities {
			if placeholder[i] {
				PT(entity).SetID(0)
			}
		}
		r.logBulkFailure("BulkCreate", len(entities), err)
		return result.FromError[[]*T](err)
	}
	return result.New(entities)
}

func (r *GenericRepositoryImpl[T, PT]) BulkCreateDistinct(entities []*T, key func(*T) string, createdByID *int64) (res *result.Result[[]*T]) {
	defer recoverInto(&res)
	return r.BulkCreate(distinct(entities, key), createdByID)
}

// BulkUpdate writes every persisted entity back inside one resilient transaction. Rows that
// no longer exist are left alone: an update never inserts. Entities that were never inserted
// have nothing to update and are left out.
func (r *GenericRepositoryImpl[T, PT]) BulkUpdate(entities []*T, updatedByID *int64) (res *result.Result[bool]) {
	defer recoverInto(&res)
	persisted := make([]*T, 0, len(entities))
	for _, entity := range entities {
		if entity != nil && PT(entity).GetID() > 0 {
			persisted = append(persisted, entity)
		}
	}
	if len(persisted) == 0 {
		return result.New(true)
	}

	now := r.opts.Now()
	for _, entity := range persisted {
		stampUpdated(entity, updatedByID, now)
	}

	ctx, cancel := r.context()
	defer cancel()
	err := Resilient(ctx, r.db, r.opts.Retry, r.opts.Log, func(tx *gorm.DB) error {
		for start := 0; start < len(persisted); start += r.opts.BulkBatchSize {
			end := min(start+r.opts.BulkBatchSize, len(persisted))
			for _, entity := range persisted[start:end] {
				err := tx.Unscoped().Model(entity).
					Select("*").
					Omit("id", "created_by_id", "created_on", clause.Associations).
					Updates(entity).Error
				if err != nil {
					return errors.Wrapf(err, "bulk update of %s rows %d-%d", r.entityName(), start, end)
				}
			}
		}
		return nil
	})
	if err != nil {
		r.logBulkFailure("BulkUpdate", len(persisted), err)
		return result.FromError[bool](err)
	}
	return result.New(true)
}

// BulkDelete soft or hard deletes the Deletable entities among entities; the rest are
// skipped. Soft deletion stamps every entity with the same actor and time, so it is
// issued as one UPDATE per batch of identities.
func (r *GenericRepositoryImpl[T, PT]) BulkDelete(entities []*T, deletedByID *int64, soft bool) (res *result.Result[bool]) {
	defer recoverInto(&res)
	deletable := make([]*T, 0, len(entities))
	ids := make([]int64, 0, len(entities))
	for _, entity := range entities {
		if entity == nil {
			continue
		}
		if _, ok := any(entity).(models.Deletable); !ok {
			continue
		}
		deletable = append(deletable, entity)
		ids = append(ids, PT(entity).GetID())
	}
	if len(deletable) == 0 {
		return result.New(true)
	}

	now := r.opts.Now()
	ctx, cancel := r.context()
	defer cancel()
	err := Resilient(ctx, r.db, r.opts.Retry, r.opts.Log, func(tx *gorm.DB) error {
		for start := 0; start < len(ids); start += r.opts.BulkBatchSize {
			end := min(start+r.opts.BulkBatchSize, len(ids))
			var err error
			if soft {
				err = tx.Model(new(T)).Unscoped().
					Where("id IN ?", ids[start:end]).
					Updates(map[string]interface{}{
						"deleted_on":    now,
						"deleted_by_id": deletedByID,
					}).Error
			} else {
				err = tx.Unscoped().Where("id IN ?", ids[start:end]).Delete(new(T)).Error
			}
			if err != nil {
				return errors.Wrapf(err, "bulk delete of %s rows %d-%d", r.entityName(), start, end)
			}
		}
		return nil
	})
	if err != nil {
		r.logBulkFailure("BulkDelete", len(deletable), err)
		return result.FromError[bool](err)
	}

	if soft {
		for _, entity := range deletable {
			any(entity).(models.Deletable).StampDeleted(deletedByID, now)
		}
	}
	return result.New(true)
}

func (r *GenericRepositoryImpl[T, PT]) logBulkFailure(operation string, count int, err error) {
	r.opts.Log.WithFields(logrus.Fields{
		"operation":    operation,
		"entity":       r.entityName(),
		"count":        count,
		"operation_id": uuid.NewString(),
		"error":        result.ErrorFrom(err).Message,
	}).Error("bulk operation failed")
}

func compact[T any](entities []*T) []*T {
	out := make([]*T, 0, len(entities))
	for _, entity := range entities {
		if entity != nil {
			out = append(out, entity)
		}
	}
	return out
}
