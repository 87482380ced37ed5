package models

// Label is insert-only: it records its creator but cannot be soft deleted.
type Label struct {
	Base
	CreatedAudit
	Name  string `gorm:"type:varchar(100);not null;unique" json:"name"`
	Color string `gorm:"type:varchar(7)" json:"color,omitempty"`
}
