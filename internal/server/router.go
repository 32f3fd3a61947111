package server

import (
	"net/http"
	"time"

	"auction-settlement/internal/config"
	handler "auction-settlement/services/bidding/handler"
	"auction-settlement/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(cfg *config.Config, biddingService handler.BiddingServiceInterface, settlementService handler.SettlementServiceInterface) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	biddingHandler := handler.NewBiddingHandler(biddingService)
	settlementHandler := handler.NewSettlementHandler(settlementService)

	router.GET("/health", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"status": "ok"}, "service healthy")
	})

	bids := router.Group("/bids", ActorMiddleware)
	{
		bids.POST("", biddingHandler.RecordBidHandler)
	}

	auctions := router.Group("/auctions")
	{
		auctions.POST("", ActorMiddleware, biddingHandler.CreateAuctionHandler)
		auctions.GET("/:auction_id", biddingHandler.GetAuctionHandler)
		auctions.GET("/:auction_id/bids", biddingHandler.GetBidsByAuctionHandler)
		auctions.GET("/:auction_id/winning", biddingHandler.GetWinningBidHandler)
		auctions.GET("/:auction_id/outcome", settlementHandler.GetOutcomeHandler)
		auctions.GET("/:auction_id/obligations", settlementHandler.GetObligationsHandler)

		actions := auctions.Group("/:auction_id", ActorMiddleware)
		actions.POST("/buy-now", biddingHandler.BuyNowHandler)
		actions.POST("/accept", settlementHandler.AcceptHandler)
		actions.POST("/relist", settlementHandler.RelistHandler)
		actions.POST("/negotiate", settlementHandler.NegotiateHandler)
		actions.POST("/cancel", settlementHandler.CancelHandler)
	}

	obligations := router.Group("/obligations", ActorMiddleware)
	{
		obligations.POST("/:obligation_id/confirm", settlementHandler.ConfirmPaymentHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id/auctions", biddingHandler.GetAuctionsByUserHandler)
		users.GET("/:user_id/reputation", settlementHandler.GetReputationHandler)
	}

	cron := router.Group("/cron", CronAuthMiddleware(cfg.Cron.Secret))
	{
		cron.POST("/process-auctions", settlementHandler.ProcessAuctionsHandler)
		cron.POST("/process-overdue-payments", settlementHandler.ProcessOverduePaymentsHandler)
	}

	return router
}
