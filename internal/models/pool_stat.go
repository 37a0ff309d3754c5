package models

import (
	"time"
)

// PoolStat is a periodic snapshot of a pool's market state, written by the
// schedule job. Derived data only; the engine never reads it.
type PoolStat struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	PoolAddress     string    `gorm:"size:100;index;not null" json:"pool_address"`
	Status          string    `gorm:"size:20;not null" json:"status"`
	DropletSupply   uint64    `json:"droplet_supply"`
	TotalRaised     uint64    `json:"total_raised"`
	ReserveBalance  uint64    `json:"reserve_balance"`
	FeeVaultBalance uint64    `json:"fee_vault_balance"`
	SpotPrice       uint64    `json:"spot_price"`
	Members         int64     `json:"members"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (PoolStat) TableName() string {
	return "pool_stats"
}

// WalletPoolStat aggregates one wallet's market activity in one pool. The
// worker maintains these rows from trade events.
type WalletPoolStat struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	PoolAddress  string    `gorm:"size:100;not null;uniqueIndex:idx_wallet_pool" json:"pool_address"`
	Wallet       string    `gorm:"size:100;not null;uniqueIndex:idx_wallet_pool" json:"wallet"`
	BuyCount     uint64    `gorm:"default:0" json:"buy_count"`
	SellCount    uint64    `gorm:"default:0" json:"sell_count"`
	BuyDroplets  uint64    `gorm:"default:0" json:"buy_droplets"`
	SellDroplets uint64    `gorm:"default:0" json:"sell_droplets"`
	BuyValue     uint64    `gorm:"default:0" json:"buy_value"`
	SellValue    uint64    `gorm:"default:0" json:"sell_value"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (WalletPoolStat) TableName() string {
	return "wallet_pool_stats"
}
