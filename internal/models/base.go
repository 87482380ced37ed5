package models

// Entity is anything the generic repository can persist: a record with an int64 identity.
type Entity interface {
	GetID() int64
	SetID(id int64)
}

type Base struct {
	ID int64 `gorm:"primaryKey" json:"id"`
}

func (b *Base) GetID() int64 {
	return b.ID
}

func (b *Base) SetID(id int64) {
	b.ID = id
}
