package helpers

import (
	"time"

	"auction-settlement/internal/auctionclock"
	model "auction-settlement/internal/models"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	AuctionID string `json:"auction_id" binding:"required"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
}

type CreateAuctionRequest struct {
	Title         string    `json:"title" binding:"required"`
	StartingPrice int64     `json:"starting_price" binding:"gte=0"`
	ReservePrice  *int64    `json:"reserve_price" binding:"omitempty,gt=0"`
	BuyNowPrice   *int64    `json:"buy_now_price" binding:"omitempty,gt=0"`
	EndTime       time.Time `json:"end_time" binding:"required"`
}

type BidResponse struct {
	BidID     string `json:"bid_id"`
	AuctionID string `json:"auction_id"`
	BidderID  string `json:"bidder_id"`
	Amount    int64  `json:"amount"`
	BuyNow    bool   `json:"buy_now,omitempty"`
	PlacedAt  string `json:"placed_at"`
}

type PlaceBidResponse struct {
	BidResponse
	EndTime  string `json:"end_time"`
	Extended bool   `json:"extended"`
}

// AuctionResponse is an auction as shown to a user. The reserve amount is
// only included for the seller.
type AuctionResponse struct {
	AuctionID        string                `json:"auction_id"`
	SellerID         string                `json:"seller_id"`
	Title            string                `json:"title"`
	StartingPrice    int64                 `json:"starting_price"`
	ReservePrice     *int64                `json:"reserve_price,omitempty"`
	HasReserve       bool                  `json:"has_reserve"`
	ReserveMet       bool                  `json:"reserve_met"`
	BuyNowPrice      *int64                `json:"buy_now_price,omitempty"`
	CurrentBid       int64                 `json:"current_bid"`
	BidCount         int                   `json:"bid_count"`
	Status           model.AuctionStatus   `json:"status"`
	EndTime          string                `json:"end_time"`
	DecisionDeadline *string               `json:"decision_deadline,omitempty"`
	TimeLeft         auctionclock.TimeLeft `json:"time_left"`
	TimeLeftText     string                `json:"time_left_text"`
	EndingSoon       bool                  `json:"ending_soon"`
}

// endingSoonThreshold is when the listing shows its "ending soon" badge
const endingSoonThreshold = 10 * time.Minute

func NewBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.BidID,
		AuctionID: bid.AuctionID,
		BidderID:  bid.BidderID,
		Amount:    bid.Amount,
		BuyNow:    bid.BuyNow,
		PlacedAt:  bid.PlacedAt.UTC().Format(time.RFC3339),
	}
}

func NewAuctionResponse(a model.Auction, viewerID string, now time.Time) AuctionResponse {
	left := auctionclock.Breakdown(now, a.EndTime)
	resp := AuctionResponse{
		AuctionID:     a.AuctionID,
		SellerID:      a.SellerID,
		Title:         a.Title,
		StartingPrice: a.StartingPrice,
		HasReserve:    a.ReservePrice != nil,
		ReserveMet:    a.ReservePrice == nil || (a.BidCount > 0 && a.CurrentBid >= *a.ReservePrice),
		BuyNowPrice:   a.BuyNowPrice,
		CurrentBid:    a.CurrentBid,
		BidCount:      a.BidCount,
		Status:        a.Status,
		EndTime:       a.EndTime.UTC().Format(time.RFC3339),
		TimeLeft:      left,
		TimeLeftText:  left.String(),
		EndingSoon:    a.Status == model.AuctionActive && auctionclock.IsEndingSoon(now, a.EndTime, endingSoonThreshold),
	}
	if viewerID != "" && viewerID == a.SellerID {
		resp.ReservePrice = a.ReservePrice
	}
	if a.DecisionDeadline != nil {
		d := a.DecisionDeadline.UTC().Format(time.RFC3339)
		resp.DecisionDeadline = &d
	}
	return resp
}
