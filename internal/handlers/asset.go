package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AddAssetRequest represents the request body for the addAsset instruction
type AddAssetRequest struct {
	Owner  string `json:"owner" binding:"required"`
	Mint   string `json:"mint" binding:"required"`
	Amount uint64 `json:"amount" binding:"required"`
}

// AddAsset deposits an external token into the pool treasury
func AddAsset(c *gin.Context) {
	var request AddAssetRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asset, err := Engine.AddAsset(request.Owner, c.Param("address"), request.Mint, request.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, asset)
}

// ListAssets returns the treasury contents of a pool
func ListAssets(c *gin.Context) {
	assets, err := Engine.ListAssets(c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}
