package models

import (
	"time"
)

// Registry is the singleton program configuration record. It is created
// exactly once by the initialize instruction and never destroyed.
type Registry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Address   string    `gorm:"size:100;uniqueIndex;not null" json:"address"`
	Admin     string    `gorm:"size:100;not null" json:"admin"`
	FeeVault  string    `gorm:"size:100;not null" json:"fee_vault"`
	Pools     uint64    `gorm:"default:0" json:"pools"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Registry) TableName() string {
	return "registry"
}
