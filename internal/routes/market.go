package routes

import (
	"github.com/gin-gonic/gin"
	"moonpool/internal/handlers"
)

// SetupMarketRoutes sets up all routes related to the internal market
func SetupMarketRoutes(r *gin.Engine) {
	market := r.Group("/pool/:address")
	{
		market.POST("/buy", handlers.BuyDroplets)
		market.POST("/sell", handlers.SellDroplets)
		market.GET("/quote", handlers.GetQuote)
	}
	r.GET("/ws/trades", handlers.TradeFeed)
}
