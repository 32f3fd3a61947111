package handler

//go:generate mockgen -source=settlement_handler.go -destination=mock_settlement_handler.go -package=handler

import (
	"context"
	"net/http"

	model "auction-settlement/internal/models"
	"auction-settlement/internal/settlement"
	"auction-settlement/services/bidding/helpers"
	"auction-settlement/utils"

	"github.com/gin-gonic/gin"
)

type SettlementServiceInterface interface {
	Preview(ctx context.Context, auctionID string) (settlement.Outcome, error)
	Obligations(ctx context.Context, auctionID string) ([]model.PaymentObligation, error)
	AcceptHighBid(ctx context.Context, auctionID, sellerID string) (model.PaymentObligation, error)
	Relist(ctx context.Context, auctionID, sellerID string) (model.Auction, error)
	NegotiateSecondBidder(ctx context.Context, auctionID, sellerID string) (model.PaymentObligation, error)
	CancelAuction(ctx context.Context, auctionID, sellerID string) error
	ConfirmPayment(ctx context.Context, obligationID, userID string) (model.PaymentObligation, error)
	Reputation(ctx context.Context, userID string) (settlement.Reputation, error)
	CloseEndedAuctions(ctx context.Context) (settlement.SweepReport, error)
	SweepOverduePayments(ctx context.Context) (settlement.SweepReport, error)
}

type SettlementHandler struct {
	service SettlementServiceInterface
}

func NewSettlementHandler(service SettlementServiceInterface) *SettlementHandler {
	return &SettlementHandler{service: service}
}

// GetOutcomeHandler handles GET /auctions/:auction_id/outcome
func (h *SettlementHandler) GetOutcomeHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	outcome, err := h.service.Preview(c.Request.Context(), auctionID)
	if err != nil {
		helpers.HandleServiceError(c, "GetOutcomeHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, outcome, "outcome computed successfully")
}

// GetObligationsHandler handles GET /auctions/:auction_id/obligations
func (h *SettlementHandler) GetObligationsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	obligations, err := h.service.Obligations(c.Request.Context(), auctionID)
	if err != nil {
		helpers.HandleServiceError(c, "GetObligationsHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	if obligations == nil {
		obligations = []model.PaymentObligation{}
	}
	utils.JSONResponse(c, http.StatusOK, obligations, "obligations retrieved successfully")
}

// AcceptHandler handles POST /auctions/:auction_id/accept
func (h *SettlementHandler) AcceptHandler(c *gin.Context) {
	auctionID, sellerID := c.Param("auction_id"), helpers.Actor(c)
	obligation, err := h.service.AcceptHighBid(c.Request.Context(), auctionID, sellerID)
	if err != nil {
		helpers.HandleServiceError(c, "AcceptHandler", err, map[string]any{"auction_id": auctionID, "seller_id": sellerID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, obligation, "high bid accepted")
	helpers.LogSuccess("AcceptHandler", "high bid accepted", map[string]any{
		"auction_id":    auctionID,
		"obligation_id": obligation.ObligationID,
	})
}

// RelistHandler handles POST /auctions/:auction_id/relist
func (h *SettlementHandler) RelistHandler(c *gin.Context) {
	auctionID, sellerID := c.Param("auction_id"), helpers.Actor(c)
	auction, err := h.service.Relist(c.Request.Context(), auctionID, sellerID)
	if err != nil {
		helpers.HandleServiceError(c, "RelistHandler", err, map[string]any{"auction_id": auctionID, "seller_id": sellerID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, auction, "auction relisted")
	helpers.LogSuccess("RelistHandler", "auction relisted", map[string]any{
		"auction_id": auctionID,
		"cycle":      auction.Cycle,
	})
}

// NegotiateHandler handles POST /auctions/:auction_id/negotiate
func (h *SettlementHandler) NegotiateHandler(c *gin.Context) {
	auctionID, sellerID := c.Param("auction_id"), helpers.Actor(c)
	obligation, err := h.service.NegotiateSecondBidder(c.Request.Context(), auctionID, sellerID)
	if err != nil {
		helpers.HandleServiceError(c, "NegotiateHandler", err, map[string]any{"auction_id": auctionID, "seller_id": sellerID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, obligation, "second bidder contacted")
	helpers.LogSuccess("NegotiateHandler", "second bidder contacted", map[string]any{
		"auction_id": auctionID,
		"user_id":    obligation.UserID,
	})
}

// CancelHandler handles POST /auctions/:auction_id/cancel
func (h *SettlementHandler) CancelHandler(c *gin.Context) {
	auctionID, sellerID := c.Param("auction_id"), helpers.Actor(c)
	if err := h.service.CancelAuction(c.Request.Context(), auctionID, sellerID); err != nil {
		helpers.HandleServiceError(c, "CancelHandler", err, map[string]any{"auction_id": auctionID, "seller_id": sellerID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"auction_id": auctionID, "status": model.AuctionCancelled}, "auction cancelled")
}

// ConfirmPaymentHandler handles POST /obligations/:obligation_id/confirm
func (h *SettlementHandler) ConfirmPaymentHandler(c *gin.Context) {
	obligationID, userID := c.Param("obligation_id"), helpers.Actor(c)
	obligation, err := h.service.ConfirmPayment(c.Request.Context(), obligationID, userID)
	if err != nil {
		helpers.HandleServiceError(c, "ConfirmPaymentHandler", err, map[string]any{"obligation_id": obligationID, "user_id": userID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, obligation, "payment confirmed")
	helpers.LogSuccess("ConfirmPaymentHandler", "payment confirmed", map[string]any{
		"obligation_id": obligationID,
		"auction_id":    obligation.AuctionID,
	})
}

// GetReputationHandler handles GET /users/:user_id/reputation
func (h *SettlementHandler) GetReputationHandler(c *gin.Context) {
	userID := c.Param("user_id")
	rep, err := h.service.Reputation(c.Request.Context(), userID)
	if err != nil {
		helpers.HandleServiceError(c, "GetReputationHandler", err, map[string]any{"user_id": userID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, rep, "reputation retrieved successfully")
}

// ProcessAuctionsHandler handles POST /cron/process-auctions
func (h *SettlementHandler) ProcessAuctionsHandler(c *gin.Context) {
	report, err := h.service.CloseEndedAuctions(c.Request.Context())
	if err != nil {
		helpers.HandleServiceError(c, "ProcessAuctionsHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, report, "ended auctions processed")
}

// ProcessOverduePaymentsHandler handles POST /cron/process-overdue-payments
func (h *SettlementHandler) ProcessOverduePaymentsHandler(c *gin.Context) {
	report, err := h.service.SweepOverduePayments(c.Request.Context())
	if err != nil {
		helpers.HandleServiceError(c, "ProcessOverduePaymentsHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, report, "overdue payments processed")
}
