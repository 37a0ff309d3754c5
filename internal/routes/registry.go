package routes

import (
	"github.com/gin-gonic/gin"
	"moonpool/internal/handlers"
)

// SetupRegistryRoutes sets up all routes related to the registry and wallets
func SetupRegistryRoutes(r *gin.Engine) {
	r.POST("/initialize", handlers.Initialize)
	r.GET("/registry", handlers.GetRegistry)
	r.POST("/airdrop", handlers.Airdrop)
	r.GET("/wallet/:address/balance", handlers.GetBalance)
}
