package models

import (
	"time"
)

// TokenAccount is one balance row in the ledger. User holdings sit at their
// derived associated-token address; vaults sit at their PDA with the pool (or
// fee vault) as owner. Balances are unsigned base units and only ever move
// through the engine's checked credit/debit path.
type TokenAccount struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Address   string    `gorm:"size:100;uniqueIndex;not null" json:"address"`
	Mint      string    `gorm:"size:100;index;not null" json:"mint"`
	Owner     string    `gorm:"size:100;index;not null" json:"owner"`
	Balance   uint64    `gorm:"default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (TokenAccount) TableName() string {
	return "token_accounts"
}
