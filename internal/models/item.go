package models

import (
	"encoding/json"
)

type Item struct {
	Base
	AuditModel
	BoxID      int64           `gorm:"index" json:"box_id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Type       string          `gorm:"type:varchar(50);not null" json:"type"`
	Size       int64           `gorm:"default:0" json:"size"`
	SHA256     string          `gorm:"type:char(64)" json:"sha256,omitempty"`
	Properties json.RawMessage `gorm:"type:json" json:"properties,omitempty"`
}
