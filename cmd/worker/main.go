package main

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moonpool/internal/engine"
	"moonpool/internal/models"
	"moonpool/pkg/config"

	logrus "github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	config.InitDB()

	// Initialize RabbitMQ
	config.InitRabbitMQ()
	defer config.RabbitMQ.Close()

	// Create consumer for the trade event queue
	msgConsumer, err := config.NewConsumer(engine.QueueDropletTrades)
	if err != nil {
		logrus.Fatal("Failed to create consumer: ", err)
	}
	defer msgConsumer.Close()

	logrus.Info("Trade stat worker started, waiting for messages...")

	// Start consuming messages
	err = msgConsumer.Consume(func(msg []byte) error {
		var event engine.TradeEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			logrus.Errorf("Failed to unmarshal trade event: %v", err)
			return err
		}

		if err := applyTradeEvent(config.DB, &event); err != nil {
			logrus.Errorf("Failed to apply trade event for pool %s: %v", event.PoolAddress, err)
			return err
		}

		logrus.Infof("Applied %s of %d droplets in pool %s", event.Side, event.Droplets, event.PoolAddress)
		return nil
	})
	if err != nil {
		logrus.Fatal("Consumer stopped: ", err)
	}
}

// applyTradeEvent folds one trade into the wallet's per-pool aggregate row.
func applyTradeEvent(db *gorm.DB, event *engine.TradeEvent) error {
	var stat models.WalletPoolStat

	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pool_address = ? AND wallet = ?", event.PoolAddress, event.Wallet).
		First(&stat).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		stat = models.WalletPoolStat{
			PoolAddress: event.PoolAddress,
			Wallet:      event.Wallet,
		}
	}

	switch event.Side {
	case models.TradeSideBuy:
		stat.BuyCount++
		stat.BuyDroplets += event.Droplets
		stat.BuyValue += event.Value
	case models.TradeSideSell:
		stat.SellCount++
		stat.SellDroplets += event.Droplets
		stat.SellValue += event.Value
	default:
		logrus.Warnf("Unknown trade side %q, skipping", event.Side)
		return nil
	}

	return db.Save(&stat).Error
}
