package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreatePoolRequest represents the request body for the createPool instruction
type CreatePoolRequest struct {
	Owner     string `json:"owner" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Symbol    string `json:"symbol" binding:"required"`
	RaiseGoal uint64 `json:"raise_goal" binding:"required"`
}

// CreatePool creates a new fundraising pool for the signing owner
func CreatePool(c *gin.Context) {
	var request CreatePoolRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pool, err := Engine.CreatePool(request.Owner, request.Name, request.Symbol, request.RaiseGoal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pool)
}

// CreatePoolMintRequest represents the request body for the createPoolMint instruction
type CreatePoolMintRequest struct {
	Owner       string `json:"owner" binding:"required"`
	MetadataURI string `json:"metadata_uri"`
}

// CreatePoolMint attaches the droplet mint to an existing pool
func CreatePoolMint(c *gin.Context) {
	var request CreatePoolMintRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pool, err := Engine.CreatePoolMint(request.Owner, c.Param("address"), request.MetadataURI)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pool)
}

// ContributeRequest represents the request body for the contribute instruction
type ContributeRequest struct {
	Payer  string `json:"payer" binding:"required"`
	Amount uint64 `json:"amount" binding:"required"`
}

// Contribute deposits base currency into a fundraising pool
func Contribute(c *gin.Context) {
	var request ContributeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := Engine.Contribute(request.Payer, c.Param("address"), request.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListPools returns all pools, newest first
func ListPools(c *gin.Context) {
	pools, err := Engine.ListPools()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pools)
}

// GetPool returns a pool with its derived status and spot price
func GetPool(c *gin.Context) {
	pool, err := Engine.GetPool(c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pool)
}
