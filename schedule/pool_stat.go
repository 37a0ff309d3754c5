package main

import (
	"os"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"moonpool/internal/engine"
	"moonpool/internal/models"
	"moonpool/pkg/config"
)

// Writes a snapshot row per pool on a fixed cadence so dashboards can chart
// supply, reserve and price without touching the live ledger tables.

func recordPoolStats(eng *engine.Engine) error {
	log.Info("> Recording pool stats")

	pools, err := eng.ListPools()
	if err != nil {
		log.Errorf("> Failed to list pools: %v", err)
		return err
	}

	registry, err := eng.GetRegistry()
	if err != nil {
		log.Errorf("> Failed to load registry: %v", err)
		return err
	}
	var feeVaultBalance uint64
	var feeVault models.TokenAccount
	if err := config.DB.Where("address = ?", registry.FeeVault).First(&feeVault).Error; err == nil {
		feeVaultBalance = feeVault.Balance
	}

	for _, pool := range pools {
		reserve, err := eng.ReserveBalance(pool.Address)
		if err != nil {
			log.Errorf("> Failed to read reserve for pool %s: %v", pool.Address, err)
			continue
		}

		var members int64
		if err := config.DB.Model(&models.PoolMember{}).
			Where("pool_address = ?", pool.Address).Count(&members).Error; err != nil {
			log.Errorf("> Failed to count members for pool %s: %v", pool.Address, err)
			continue
		}

		stat := models.PoolStat{
			PoolAddress:     pool.Address,
			Status:          pool.Status,
			DropletSupply:   pool.DropletSupply,
			TotalRaised:     pool.TotalRaised,
			ReserveBalance:  reserve,
			FeeVaultBalance: feeVaultBalance,
			SpotPrice:       pool.SpotPrice,
			Members:         members,
		}
		if err := config.DB.Create(&stat).Error; err != nil {
			log.Errorf("> Failed to save stat for pool %s: %v", pool.Address, err)
			continue
		}
	}

	log.Infof("> Recorded stats for %d pools", len(pools))
	return nil
}

func main() {
	// Log to file
	os.MkdirAll("logs", 0755)
	file, err := os.OpenFile("logs/pool_stat_schedule.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)

	if err == nil {
		log.SetOutput(file)
	} else {
		log.Warn("Unable to open log file, logging to stdout")
	}

	config.InitDB()
	eng := engine.New(config.DB)

	c := cron.New()
	_, err = c.AddFunc("@every 1m", func() {
		if err := recordPoolStats(eng); err != nil {
			log.Errorf("> Pool stat run failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule pool stat job: %v", err)
	}

	log.Info("> Pool stat schedule started")
	c.Run()
}
