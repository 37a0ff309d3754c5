// Package engine implements the moonpool state transitions. Every exported
// operation maps to one instruction, runs inside a single database
// transaction, and either applies all of its account mutations or none.
package engine

import (
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moonpool/internal/models"
	"moonpool/pkg/moonpool"
	"moonpool/pkg/pricing"
)

// Queue names for post-commit events.
const (
	QueueDropletTrades     = "droplet_trades"
	QueuePoolContributions = "pool_contributions"
)

// Publisher delivers post-commit events to the message broker. config.Publisher
// satisfies this; a nil publisher disables events.
type Publisher interface {
	Publish(queueName string, message interface{}) error
}

// Engine executes instructions against the ledger database.
type Engine struct {
	db        *gorm.DB
	strategy  pricing.Strategy
	publisher Publisher
	now       func() time.Time
	log       *logrus.Entry
}

// Option configures an Engine.
type Option func(*Engine)

// WithStrategy overrides the default bonding-curve pricing strategy.
func WithStrategy(s pricing.Strategy) Option {
	return func(e *Engine) { e.strategy = s }
}

// WithPublisher attaches a broker publisher for trade/contribution events.
func WithPublisher(p Publisher) Option {
	return func(e *Engine) { e.publisher = p }
}

// WithClock overrides the time source. Used by tests and by nothing else.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine over the given database.
func New(db *gorm.DB, opts ...Option) *Engine {
	e := &Engine{
		db:       db,
		strategy: pricing.BondingCurve{},
		now:      time.Now,
		log:      logrus.WithField("component", "engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strategy reports the active pricing strategy.
func (e *Engine) Strategy() pricing.Strategy {
	return e.strategy
}

// parseKey validates a caller-supplied base58 address.
func parseKey(address string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, ErrAddressMismatch
	}
	return key, nil
}

// solanaKeyMust parses an address the engine itself derived and stored. A
// panic here means the ledger rows were corrupted outside the engine.
func solanaKeyMust(address string) solana.PublicKey {
	return solana.MustPublicKeyFromBase58(address)
}

// loadRegistry fetches the singleton registry row, locked for update.
func loadRegistry(tx *gorm.DB) (*models.Registry, error) {
	var registry models.Registry
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&registry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotInitialized
		}
		return nil, err
	}
	return &registry, nil
}

// loadPool fetches a pool row by address, locked for update. Lifecycle status
// is derived from the freshly-read row, never from a cached value.
func loadPool(tx *gorm.DB, address string) (*models.Pool, error) {
	var pool models.Pool
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("address = ?", address).First(&pool).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPoolNotFound
		}
		return nil, err
	}
	return &pool, nil
}

func (e *Engine) economics(pool *models.Pool) pricing.Economics {
	return pricing.Economics{
		RaiseGoal: pool.RaiseGoal,
		MaxSupply: moonpool.MAX_DROPLET_SUPPLY,
	}
}

// publish sends a post-commit event, best effort. Delivery failures are
// logged and never unwind the committed instruction.
func (e *Engine) publish(queue string, message interface{}) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(queue, message); err != nil {
		e.log.Warnf("failed to publish %s event: %v", queue, err)
	}
}

// TradeEvent is published to QueueDropletTrades after every buy or sell.
type TradeEvent struct {
	PoolAddress string `json:"pool_address"`
	Wallet      string `json:"wallet"`
	Side        string `json:"side"`
	Droplets    uint64 `json:"droplets"`
	Value       uint64 `json:"value"`
	OwnerFee    uint64 `json:"owner_fee"`
	ProgramFee  uint64 `json:"program_fee"`
	Supply      uint64 `json:"supply"`
	Timestamp   int64  `json:"timestamp"`
}

// ContributionEvent is published to QueuePoolContributions after every
// successful contribution.
type ContributionEvent struct {
	PoolAddress string `json:"pool_address"`
	Contributor string `json:"contributor"`
	Amount      uint64 `json:"amount"`
	Droplets    uint64 `json:"droplets"`
	TotalRaised uint64 `json:"total_raised"`
	Supply      uint64 `json:"supply"`
	Matured     bool   `json:"matured"`
	Timestamp   int64  `json:"timestamp"`
}
