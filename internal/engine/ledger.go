package engine

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moonpool/internal/models"
)

// The ledger primitives below are the only code allowed to move balances.
// Every read locks the row for update and every mutation is checked, so a
// conflicting instruction serializes on the account and an overflow or
// shortfall aborts the surrounding transaction before anything is written.

// getAccount loads a balance row, locked for update.
func getAccount(tx *gorm.DB, address string) (*models.TokenAccount, error) {
	var account models.TokenAccount
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("address = ?", address).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// getOrCreateAccount loads a balance row, creating it with a zero balance if
// it does not exist. Mirrors the runtime's init-if-needed account semantics.
func getOrCreateAccount(tx *gorm.DB, address, mint, owner string) (*models.TokenAccount, error) {
	account, err := getAccount(tx, address)
	if err == nil {
		return account, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	account = &models.TokenAccount{
		Address: address,
		Mint:    mint,
		Owner:   owner,
	}
	if err := tx.Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

// accountSet resolves balance rows within one transaction. Lookups of the
// same address return the same struct, so when two participants of an
// instruction alias the same account (a pool owner trading in their own
// pool, for instance) sequential mutations compound instead of clobbering
// each other with stale balances.
type accountSet struct {
	tx    *gorm.DB
	cache map[string]*models.TokenAccount
}

func newAccountSet(tx *gorm.DB) *accountSet {
	return &accountSet{tx: tx, cache: make(map[string]*models.TokenAccount)}
}

func (s *accountSet) get(address string) (*models.TokenAccount, error) {
	if account, ok := s.cache[address]; ok {
		return account, nil
	}
	account, err := getAccount(s.tx, address)
	if err != nil {
		return nil, err
	}
	s.cache[address] = account
	return account, nil
}

func (s *accountSet) getOrCreate(address, mint, owner string) (*models.TokenAccount, error) {
	if account, ok := s.cache[address]; ok {
		return account, nil
	}
	account, err := getOrCreateAccount(s.tx, address, mint, owner)
	if err != nil {
		return nil, err
	}
	s.cache[address] = account
	return account, nil
}

// credit adds amount to an account with overflow checking.
func credit(tx *gorm.DB, account *models.TokenAccount, amount uint64) error {
	next := account.Balance + amount
	if next < account.Balance {
		return ErrOverflow
	}
	account.Balance = next
	return tx.Model(account).Update("balance", next).Error
}

// debit removes amount from an account, failing with shortfallErr if the
// balance cannot cover it.
func debit(tx *gorm.DB, account *models.TokenAccount, amount uint64, shortfallErr error) error {
	if account.Balance < amount {
		return shortfallErr
	}
	account.Balance -= amount
	return tx.Model(account).Update("balance", account.Balance).Error
}

// transfer moves amount between two already-loaded accounts.
func transfer(tx *gorm.DB, from, to *models.TokenAccount, amount uint64, shortfallErr error) error {
	if err := debit(tx, from, amount, shortfallErr); err != nil {
		return err
	}
	return credit(tx, to, amount)
}

// checkedAdd is used for pool-level counters that live outside token accounts.
func checkedAdd(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}
