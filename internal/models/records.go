package models

import (
	"time"
)

// PoolMember marks that a wallet has contributed to a pool at least once.
type PoolMember struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	PoolAddress string    `gorm:"size:100;not null;uniqueIndex:idx_member_pool_user" json:"pool_address"`
	User        string    `gorm:"size:100;not null;uniqueIndex:idx_member_pool_user" json:"user"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (PoolMember) TableName() string {
	return "pool_members"
}

// ContributionRecord is the append-only history of fundraising deposits.
type ContributionRecord struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	PoolAddress string    `gorm:"size:100;index;not null" json:"pool_address"`
	Contributor string    `gorm:"size:100;index;not null" json:"contributor"`
	Amount      uint64    `gorm:"not null" json:"amount"`
	Droplets    uint64    `gorm:"not null" json:"droplets"`
	Timestamp   int64     `gorm:"not null" json:"timestamp"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (ContributionRecord) TableName() string {
	return "contribution_records"
}

// Trade sides
const (
	TradeSideBuy  = "buy"
	TradeSideSell = "sell"
)

// TradeRecord is the append-only history of market operations.
type TradeRecord struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	PoolAddress string    `gorm:"size:100;index;not null" json:"pool_address"`
	Wallet      string    `gorm:"size:100;index;not null" json:"wallet"`
	Side        string    `gorm:"size:10;not null" json:"side"`
	Droplets    uint64    `gorm:"not null" json:"droplets"`
	// Value is the gross base-currency leg: the vault credit on a buy, the
	// vault debit on a sell.
	Value       uint64    `gorm:"not null" json:"value"`
	OwnerFee    uint64    `gorm:"default:0" json:"owner_fee"`
	ProgramFee  uint64    `gorm:"default:0" json:"program_fee"`
	Timestamp   int64     `gorm:"not null" json:"timestamp"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (TradeRecord) TableName() string {
	return "trade_records"
}
