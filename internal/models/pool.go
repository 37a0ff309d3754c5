package models

import (
	"time"
)

// Pool lifecycle states. Status is always recomputed from the stored fields
// and the current time, never persisted.
const (
	PoolStatusFundraising = "fundraising"
	PoolStatusMatured     = "matured"
	PoolStatusClosed      = "closed"
)

// Pool is one fundraising campaign and, after maturity, one internal market.
type Pool struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Address         string    `gorm:"size:100;uniqueIndex;not null" json:"address"`
	Owner           string    `gorm:"size:100;not null;uniqueIndex:idx_pool_owner_name" json:"owner"`
	Name            string    `gorm:"size:24;not null;uniqueIndex:idx_pool_owner_name" json:"name"`
	Symbol          string    `gorm:"size:10" json:"symbol"`
	URI             string    `gorm:"size:64" json:"uri"`
	DropletMint     string    `gorm:"size:100" json:"droplet_mint"`
	DropletSupply   uint64    `gorm:"default:0" json:"droplet_supply"`
	RaiseGoal       uint64    `gorm:"not null" json:"raise_goal"`
	TotalRaised     uint64    `gorm:"default:0" json:"total_raised"`
	MaturityDate    int64     `gorm:"not null" json:"maturity_date"`
	TradingDeadline int64     `gorm:"not null" json:"trading_deadline"`
	IsInitialized   bool      `gorm:"default:false" json:"is_initialized"`
	Bump            uint8     `json:"bump"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Pool) TableName() string {
	return "pools"
}

// Status derives the lifecycle state at the given instant. A pool matures as
// soon as the raise goal is met or the raise window elapses, whichever comes
// first, and closes once the trading window ends.
func (p *Pool) Status(now time.Time) string {
	ts := now.Unix()
	if ts > p.TradingDeadline {
		return PoolStatusClosed
	}
	if p.TotalRaised >= p.RaiseGoal || ts > p.MaturityDate {
		return PoolStatusMatured
	}
	return PoolStatusFundraising
}
