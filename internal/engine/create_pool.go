package engine

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"moonpool/internal/models"
	"moonpool/pkg/moonpool"
)

// CreatePool allocates a pool and its base-currency vault for the signing
// owner, charging the flat creation fee into the protocol fee vault. The pool
// address is derived from (owner, name), so the same pair can never be
// created twice.
func (e *Engine) CreatePool(owner, name, symbol string, raiseGoal uint64) (*models.Pool, error) {
	ownerKey, err := parseKey(owner)
	if err != nil {
		return nil, err
	}
	if len(name) == 0 || len(name) > moonpool.MAX_POOL_NAME_LEN {
		return nil, ErrInvalidPoolName
	}
	if len(symbol) == 0 || len(symbol) > moonpool.MAX_SYMBOL_LEN {
		return nil, ErrInvalidSymbol
	}
	if raiseGoal == 0 {
		return nil, ErrInvalidAmount
	}

	poolPDA, err := moonpool.DerivePool(ownerKey, name)
	if err != nil {
		return nil, err
	}
	vaultPDA, err := moonpool.DeriveWsolVault(poolPDA.Address)
	if err != nil {
		return nil, err
	}

	now := e.now()
	var pool *models.Pool
	err = e.db.Transaction(func(tx *gorm.DB) error {
		registry, err := loadRegistry(tx)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Pool{}).
			Where("owner = ? AND name = ?", owner, name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicatePool
		}

		accounts := newAccountSet(tx)
		payer, err := accounts.getOrCreate(owner, moonpool.WSOL_MINT.String(), owner)
		if err != nil {
			return err
		}
		feeVault, err := accounts.get(registry.FeeVault)
		if err != nil {
			return err
		}
		if err := transfer(tx, payer, feeVault, moonpool.POOL_CREATION_FEE, ErrInsufficientFunds); err != nil {
			return err
		}

		pool = &models.Pool{
			Address:         poolPDA.Address.String(),
			Owner:           owner,
			Name:            name,
			Symbol:          symbol,
			RaiseGoal:       raiseGoal,
			MaturityDate:    now.Add(moonpool.RAISE_PERIOD).Unix(),
			TradingDeadline: now.Add(moonpool.TRADING_WINDOW).Unix(),
			Bump:            poolPDA.Bump,
		}
		if err := tx.Create(pool).Error; err != nil {
			return err
		}

		if _, err := accounts.getOrCreate(vaultPDA.Address.String(), moonpool.WSOL_MINT.String(), pool.Address); err != nil {
			return err
		}

		registry.Pools++
		return tx.Model(registry).Update("pools", registry.Pools).Error
	})
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"pool":       pool.Address,
		"owner":      owner,
		"raise_goal": raiseGoal,
	}).Info("pool created")
	return pool, nil
}
