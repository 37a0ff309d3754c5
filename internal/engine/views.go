package engine

import (
	"gorm.io/gorm"

	"moonpool/internal/models"
	"moonpool/pkg/moonpool"
)

// Read-only queries used by the HTTP surface. None of these mutate state.

// PoolView is a pool row together with its derived lifecycle status and the
// strategy's current price.
type PoolView struct {
	models.Pool
	Status    string `json:"status"`
	SpotPrice uint64 `json:"spot_price"`
}

func (e *Engine) view(pool *models.Pool) *PoolView {
	spot, err := e.strategy.SpotPrice(e.economics(pool), pool.DropletSupply)
	if err != nil {
		spot = 0
	}
	return &PoolView{
		Pool:      *pool,
		Status:    pool.Status(e.now()),
		SpotPrice: spot,
	}
}

// GetRegistry returns the singleton registry, if initialized.
func (e *Engine) GetRegistry() (*models.Registry, error) {
	var registry models.Registry
	if err := e.db.First(&registry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotInitialized
		}
		return nil, err
	}
	return &registry, nil
}

// GetPool returns one pool by address.
func (e *Engine) GetPool(address string) (*PoolView, error) {
	var pool models.Pool
	if err := e.db.Where("address = ?", address).First(&pool).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPoolNotFound
		}
		return nil, err
	}
	return e.view(&pool), nil
}

// ListPools returns every pool, newest first.
func (e *Engine) ListPools() ([]*PoolView, error) {
	var pools []models.Pool
	if err := e.db.Order("id DESC").Find(&pools).Error; err != nil {
		return nil, err
	}
	views := make([]*PoolView, 0, len(pools))
	for i := range pools {
		views = append(views, e.view(&pools[i]))
	}
	return views, nil
}

// ListAssets returns the treasury contents of one pool.
func (e *Engine) ListAssets(poolAddress string) ([]models.Asset, error) {
	var assets []models.Asset
	if err := e.db.Where("pool_address = ?", poolAddress).Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// Quote prices a prospective trade without executing it. Fees are reported
// the way the trade would charge them: on top for buys, from proceeds for
// sells.
type Quote struct {
	PoolAddress string `json:"pool_address"`
	Side        string `json:"side"`
	Droplets    uint64 `json:"droplets"`
	Value       uint64 `json:"value"`
	OwnerFee    uint64 `json:"owner_fee"`
	ProgramFee  uint64 `json:"program_fee"`
	Total       uint64 `json:"total"`
}

// QuoteTrade prices a buy or sell of the given size at current supply.
func (e *Engine) QuoteTrade(poolAddress, side string, amount uint64) (*Quote, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	view, err := e.GetPool(poolAddress)
	if err != nil {
		return nil, err
	}
	econ := e.economics(&view.Pool)

	quote := &Quote{PoolAddress: poolAddress, Side: side, Droplets: amount}
	switch side {
	case models.TradeSideBuy:
		cost, err := e.strategy.BuyCost(econ, view.DropletSupply, amount)
		if err != nil {
			return nil, mapPricingErr(err, ErrExceedsMaximumSupply)
		}
		quote.Value = cost
		if quote.OwnerFee, err = feeOn(cost, moonpool.POOL_OWNER_FEE_BPS); err != nil {
			return nil, err
		}
		if quote.ProgramFee, err = feeOn(cost, moonpool.PROGRAM_FEE_BPS); err != nil {
			return nil, err
		}
		total, err := checkedAdd(cost, quote.OwnerFee)
		if err != nil {
			return nil, err
		}
		if quote.Total, err = checkedAdd(total, quote.ProgramFee); err != nil {
			return nil, err
		}
	case models.TradeSideSell:
		value, err := e.strategy.SellReturn(econ, view.DropletSupply, amount)
		if err != nil {
			return nil, mapPricingErr(err, ErrInsufficientSupply)
		}
		quote.Value = value
		if quote.ProgramFee, err = feeOn(value, moonpool.PROGRAM_FEE_BPS); err != nil {
			return nil, err
		}
		if quote.ProgramFee > value {
			quote.ProgramFee = value
		}
		if quote.OwnerFee, err = feeOn(value, moonpool.POOL_OWNER_FEE_BPS); err != nil {
			return nil, err
		}
		if quote.OwnerFee > value-quote.ProgramFee {
			quote.OwnerFee = value - quote.ProgramFee
		}
		quote.Total = value - quote.ProgramFee - quote.OwnerFee
	default:
		return nil, ErrInvalidAmount
	}
	return quote, nil
}

// ReserveBalance reports the pool's base-currency vault balance.
func (e *Engine) ReserveBalance(poolAddress string) (uint64, error) {
	poolKey, err := parseKey(poolAddress)
	if err != nil {
		return 0, err
	}
	vaultPDA, err := moonpool.DeriveWsolVault(poolKey)
	if err != nil {
		return 0, err
	}

	var account models.TokenAccount
	if err := e.db.Where("address = ?", vaultPDA.Address.String()).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return account.Balance, nil
}

// GetBalance reports a wallet's balance of a mint, zero if no account exists.
func (e *Engine) GetBalance(wallet, mint string) (uint64, error) {
	walletKey, err := parseKey(wallet)
	if err != nil {
		return 0, err
	}

	address := wallet
	if mint != moonpool.WSOL_MINT.String() {
		mintKey, err := parseKey(mint)
		if err != nil {
			return 0, err
		}
		holder, err := moonpool.DeriveHolderAccount(walletKey, mintKey)
		if err != nil {
			return 0, err
		}
		address = holder.String()
	}

	var account models.TokenAccount
	if err := e.db.Where("address = ?", address).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return account.Balance, nil
}
