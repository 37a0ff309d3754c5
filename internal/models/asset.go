package models

import (
	"time"
)

// Asset is one external token custodied by a pool's treasury. The record is
// created on the first deposit for a (pool, mint) pair; later deposits for
// the same mint accumulate into the same vault.
type Asset struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Address     string    `gorm:"size:100;uniqueIndex;not null" json:"address"`
	PoolAddress string    `gorm:"size:100;not null;uniqueIndex:idx_asset_pool_mint" json:"pool_address"`
	Mint        string    `gorm:"size:100;not null;uniqueIndex:idx_asset_pool_mint" json:"mint"`
	Vault       string    `gorm:"size:100;not null" json:"vault"`
	Amount      uint64    `gorm:"default:0" json:"amount"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Asset) TableName() string {
	return "assets"
}
