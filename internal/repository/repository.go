package repository

import (
	"context"
	"time"

	"Repokit/internal/result"

	"gorm.io/gorm"
)

// GenericRepository is the audit-aware CRUD surface shared by every entity repository.
// No method panics or returns a bare error: failures are reported through the Result.
type GenericRepository[T any] interface {
	Create(entity *T, createdByID *int64) *result.Result[*T]
	CreateMany(entities []*T, createdByID *int64) *result.Result[[]*T]
	CreateDistinct(entities []*T, key func(*T) string, createdByID *int64) *result.Result[[]*T]

	BulkCreate(entities []*T, createdByID *int64) *result.Result[[]*T]
	BulkCreateDistinct(entities []*T, key func(*T) string, createdByID *int64) *result.Result[[]*T]
	BulkUpdate(entities []*T, updatedByID *int64) *result.Result[bool]
	BulkDelete(entities []*T, deletedByID *int64, soft bool) *result.Result[bool]

	Delete(entity *T, deletedByID *int64, soft bool) *result.Result[bool]
	DeleteByID(id int64, deletedByID *int64, soft bool) *result.Result[bool]
	DeleteMany(entities []*T, deletedByID *int64, batchSize int, soft bool) *result.Result[bool]
	PurgeDeleted(before time.Time) *result.Result[int]

	Restore(entity *T) *result.Result[bool]
	RestoreByID(id int64) *result.Result[bool]

	Update(entity *T, updatedByID *int64) *result.Result[bool]
	UpdateMany(entities []*T, updatedByID *int64) *result.Result[bool]

	FindByID(id int64, ignoreQueryFilters bool) *result.Result[*T]
	FindAll(opts QueryOptions) *result.Result[[]*T]
	Count(opts QueryOptions) *result.Result[int64]
	Query(opts QueryOptions) *gorm.DB

	// WithContext returns a copy of the repository whose statements run under ctx.
	WithContext(ctx context.Context) GenericRepository[T]
	// WithDB returns a copy of the repository that issues its statements through db,
	// typically the handle of a transaction opened by Transaction.
	WithDB(db *gorm.DB) GenericRepository[T]
	// Transaction runs work in one resilient transaction under the repository context.
	Transaction(work func(tx *gorm.DB) error) error
	CommandTimeout() time.Duration
	SetCommandTimeout(timeout time.Duration)
}
