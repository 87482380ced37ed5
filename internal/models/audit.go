package models

import (
	"time"

	"gorm.io/gorm"
)

// Creatable entities record who inserted them and when.
type Creatable interface {
	StampCreated(by *int64, on time.Time)
}

// Updatable entities record who last changed them and when.
type Updatable interface {
	StampUpdated(by *int64, on time.Time)
}

// Deletable entities support soft deletion. A valid DeletedOn marks the row as deleted.
type Deletable interface {
	StampDeleted(by *int64, on time.Time)
	ClearDeleted()
	IsDeleted() bool
}

type CreatedAudit struct {
	CreatedByID *int64     `json:"created_by_id,omitempty"`
	CreatedOn   *time.Time `json:"created_on,omitempty"`
}

func (a *CreatedAudit) StampCreated(by *int64, on time.Time) {
	a.CreatedByID = copyID(by)
	a.CreatedOn = &on
}

type UpdatedAudit struct {
	UpdatedByID *int64     `json:"updated_by_id,omitempty"`
	UpdatedOn   *time.Time `json:"updated_on,omitempty"`
}

func (a *UpdatedAudit) StampUpdated(by *int64, on time.Time) {
	a.UpdatedByID = copyID(by)
	a.UpdatedOn = &on
}

// DeletedAudit uses gorm.DeletedAt so that default queries skip soft-deleted rows
// and Unscoped bypasses the filter.
type DeletedAudit struct {
	DeletedByID *int64         `json:"deleted_by_id,omitempty"`
	DeletedOn   gorm.DeletedAt `gorm:"index" json:"deleted_on,omitempty"`
}

func (a *DeletedAudit) StampDeleted(by *int64, on time.Time) {
	a.DeletedByID = copyID(by)
	a.DeletedOn = gorm.DeletedAt{Time: on, Valid: true}
}

func (a *DeletedAudit) ClearDeleted() {
	a.DeletedByID = nil
	a.DeletedOn = gorm.DeletedAt{}
}

func (a *DeletedAudit) IsDeleted() bool {
	return a.DeletedOn.Valid
}

// AuditModel carries every audit capability.
type AuditModel struct {
	CreatedAudit
	UpdatedAudit
	DeletedAudit
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
