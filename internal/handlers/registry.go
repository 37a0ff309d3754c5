package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// InitializeRequest represents the request body for the initialize instruction
type InitializeRequest struct {
	Admin string `json:"admin" binding:"required"`
}

// Initialize creates the registry and protocol fee vault. One-shot; repeat
// calls get AlreadyInitialized.
func Initialize(c *gin.Context) {
	var request InitializeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	registry, err := Engine.Initialize(request.Admin)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, registry)
}

// GetRegistry returns the registry singleton
func GetRegistry(c *gin.Context) {
	registry, err := Engine.GetRegistry()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, registry)
}

// AirdropRequest represents the request body for the dev faucet
type AirdropRequest struct {
	Address string `json:"address" binding:"required"`
	Amount  uint64 `json:"amount" binding:"required"`
}

// Airdrop credits base currency to a wallet. Only available when DEV_FAUCET
// is set; production deployments never enable it.
func Airdrop(c *gin.Context) {
	if os.Getenv("DEV_FAUCET") == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "faucet is disabled"})
		return
	}

	var request AirdropRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := Engine.Airdrop(request.Address, request.Amount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": request.Address, "amount": request.Amount})
}

// GetBalance returns a wallet's balance of the given mint
func GetBalance(c *gin.Context) {
	wallet := c.Param("address")
	mint := c.Query("mint")
	if mint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mint query parameter is required"})
		return
	}

	balance, err := Engine.GetBalance(wallet, mint)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet": wallet, "mint": mint, "balance": balance})
}
