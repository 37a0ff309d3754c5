package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moonpool/internal/models"
)

// TradeRequest represents the request body for buy/sell instructions
type TradeRequest struct {
	Payer  string `json:"payer" binding:"required"`
	Amount uint64 `json:"amount" binding:"required"`
}

// BuyDroplets buys droplets from a matured pool's internal market
func BuyDroplets(c *gin.Context) {
	var request TradeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := Engine.BuyDroplets(request.Payer, c.Param("address"), request.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	feed.broadcast(outcome)
	c.JSON(http.StatusOK, outcome)
}

// SellDroplets sells droplets back to a matured pool's internal market
func SellDroplets(c *gin.Context) {
	var request TradeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := Engine.SellDroplets(request.Payer, c.Param("address"), request.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	feed.broadcast(outcome)
	c.JSON(http.StatusOK, outcome)
}

// GetQuote prices a prospective trade without executing it
func GetQuote(c *gin.Context) {
	side := c.DefaultQuery("side", models.TradeSideBuy)
	amount, err := strconv.ParseUint(c.Query("amount"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount format"})
		return
	}

	quote, err := Engine.QuoteTrade(c.Param("address"), side, amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
