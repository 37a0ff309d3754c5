package routes

import (
	"github.com/gin-gonic/gin"
	"moonpool/internal/handlers"
)

// SetupPoolRoutes sets up all routes related to pool lifecycle and treasury
func SetupPoolRoutes(r *gin.Engine) {
	pool := r.Group("/pool")
	{
		pool.GET("", handlers.ListPools)
		pool.POST("", handlers.CreatePool)
		pool.GET("/:address", handlers.GetPool)
		pool.POST("/:address/mint", handlers.CreatePoolMint)
		pool.POST("/:address/contribute", handlers.Contribute)
		pool.GET("/:address/asset", handlers.ListAssets)
		pool.POST("/:address/asset", handlers.AddAsset)
	}
}
