package handler

//go:generate mockgen -source=bidding_handler.go -destination=mock_bidding_handler.go -package=handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	bidding "auction-settlement/internal/biddingService"
	"auction-settlement/internal/biddingerrors"
	model "auction-settlement/internal/models"
	"auction-settlement/services/bidding/helpers"
	"auction-settlement/utils"

	"github.com/gin-gonic/gin"
)

type BiddingServiceInterface interface {
	CreateAuction(ctx context.Context, sellerID string, req bidding.NewAuction) (model.Auction, error)
	PlaceBid(ctx context.Context, auctionID, bidderID string, amount int64) (bidding.PlacedBid, error)
	BuyNow(ctx context.Context, auctionID, buyerID string) (model.PaymentObligation, error)
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	GetBidsForAuction(ctx context.Context, auctionID string) ([]model.Bid, error)
	GetWinningBid(ctx context.Context, auctionID string) (model.Bid, error)
	GetAuctionsByBidder(ctx context.Context, bidderID string) ([]model.Auction, error)
	Now() time.Time
}

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// CreateAuctionHandler handles POST /auctions
func (h *BiddingHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	sellerID := helpers.Actor(c)
	auction, err := h.service.CreateAuction(c.Request.Context(), sellerID, bidding.NewAuction{
		Title:         req.Title,
		StartingPrice: req.StartingPrice,
		ReservePrice:  req.ReservePrice,
		BuyNowPrice:   req.BuyNowPrice,
		EndTime:       req.EndTime,
	})
	if err != nil {
		helpers.HandleServiceError(c, "CreateAuctionHandler", err, map[string]any{"seller_id": sellerID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewAuctionResponse(auction, sellerID, h.service.Now()), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": auction.AuctionID,
		"seller_id":  sellerID,
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *BiddingHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	auction, err := h.service.GetAuction(c.Request.Context(), auctionID)
	if err != nil {
		helpers.HandleServiceError(c, "GetAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(auction, helpers.Actor(c), h.service.Now()), "auction retrieved successfully")
}

// RecordBidHandler handles POST /bids
func (h *BiddingHandler) RecordBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RecordBidHandler", err)
		return
	}

	bidderID := helpers.Actor(c)
	placed, err := h.service.PlaceBid(c.Request.Context(), req.AuctionID, bidderID, req.Amount)
	if err != nil {
		helpers.HandleServiceError(c, "RecordBidHandler", err, map[string]any{
			"auction_id": req.AuctionID,
			"user_id":    bidderID,
		})
		return
	}

	resp := helpers.PlaceBidResponse{
		BidResponse: helpers.NewBidResponse(placed.Bid),
		EndTime:     placed.EndTime.UTC().Format(time.RFC3339),
		Extended:    placed.Extended,
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid recorded successfully")
	helpers.LogSuccess("RecordBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     placed.Bid.BidID,
		"auction_id": placed.Bid.AuctionID,
		"user_id":    bidderID,
		"amount":     placed.Bid.Amount,
		"extended":   placed.Extended,
	})
}

// BuyNowHandler handles POST /auctions/:auction_id/buy-now
func (h *BiddingHandler) BuyNowHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	buyerID := helpers.Actor(c)

	obligation, err := h.service.BuyNow(c.Request.Context(), auctionID, buyerID)
	if err != nil {
		helpers.HandleServiceError(c, "BuyNowHandler", err, map[string]any{
			"auction_id": auctionID,
			"user_id":    buyerID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, obligation, "auction bought successfully")
	helpers.LogSuccess("BuyNowHandler", "auction bought successfully", map[string]any{
		"auction_id":    auctionID,
		"obligation_id": obligation.ObligationID,
		"user_id":       buyerID,
	})
}

// GetBidsByAuctionHandler handles GET /auctions/:auction_id/bids
func (h *BiddingHandler) GetBidsByAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.service.GetBidsForAuction(c.Request.Context(), auctionID)
	if err != nil && !errors.Is(err, biddingerrors.ErrNoBids) {
		helpers.HandleServiceError(c, "GetBidsByAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, helpers.NewBidResponse(b))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByAuctionHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(resp),
	})
}

// GetWinningBidHandler handles GET /auctions/:auction_id/winning
func (h *BiddingHandler) GetWinningBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bid, err := h.service.GetWinningBid(c.Request.Context(), auctionID)
	if err != nil {
		// For auction, winning bid not found -> 404
		if errors.Is(err, biddingerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "no winning bid found")
			utils.Info("GetWinningBidHandler: no winning bid found", map[string]any{"auction_id": auctionID})
			return
		}
		helpers.HandleServiceError(c, "GetWinningBidHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponse(bid), "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": bid.AuctionID,
		"user_id":    bid.BidderID,
		"amount":     bid.Amount,
	})
}

// GetAuctionsByUserHandler handles GET /users/:user_id/auctions
func (h *BiddingHandler) GetAuctionsByUserHandler(c *gin.Context) {
	userID := c.Param("user_id")
	auctions, err := h.service.GetAuctionsByBidder(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, biddingerrors.ErrUserNoBids) {
		helpers.HandleServiceError(c, "GetAuctionsByUserHandler", err, map[string]any{"user_id": userID})
		return
	}

	now := h.service.Now()
	viewer := helpers.Actor(c)
	resp := make([]helpers.AuctionResponse, 0, len(auctions))
	for _, a := range auctions {
		resp = append(resp, helpers.NewAuctionResponse(a, viewer, now))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "auctions retrieved successfully")
	helpers.LogSuccess("GetAuctionsByUserHandler", "auctions retrieved successfully", map[string]any{
		"user_id":        userID,
		"auctions_count": len(resp),
	})
}
