package repository

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

import (
	"context"
	"time"

	"auction-settlement/internal/models"
)

// AuctionDB defines the storage interface for auctions, bids, payment
// obligations and penalties. Every method is atomic. Guarded writes return
// biddingerrors.ErrStateConflict when the guard does not hold.
type AuctionDB interface {
	CreateAuction(ctx context.Context, auction models.Auction) error
	GetAuction(ctx context.Context, auctionID string) (models.Auction, error)
	// ListAuctionsDue returns active auctions whose end time is <= now
	ListAuctionsDue(ctx context.Context, now time.Time) ([]models.Auction, error)
	// ListAuctionsByStatus returns the auctions in one status, least recently updated first
	ListAuctionsByStatus(ctx context.Context, status models.AuctionStatus) ([]models.Auction, error)
	GetAuctionsByBidder(ctx context.Context, bidderID string) ([]models.Auction, error)
	// TransitionAuction applies update only if the auction matches guard
	TransitionAuction(ctx context.Context, auctionID string, guard models.AuctionGuard, update models.AuctionUpdate) error

	// RecordBid appends a bid if the auction is active in the bid's cycle, the
	// bid is placed before the end time and its amount is strictly greater
	// than the current high bid. If extendTo is later than the stored end
	// time it becomes the new end time.
	RecordBid(ctx context.Context, bid models.Bid, extendTo *time.Time, maxExtensions int) (models.BidReceipt, error)
	// GetBidsByAuction returns the bids of one cycle ordered by precedence
	GetBidsByAuction(ctx context.Context, auctionID string, cycle int) ([]models.Bid, error)
	GetWinningBid(ctx context.Context, auctionID string, cycle int) (models.Bid, error)

	// CreateObligation inserts an obligation unless another open one exists for the auction
	CreateObligation(ctx context.Context, obligation models.PaymentObligation) error
	GetObligation(ctx context.Context, obligationID string) (models.PaymentObligation, error)
	GetObligationsByAuction(ctx context.Context, auctionID string) ([]models.PaymentObligation, error)
	// ListOverdueObligations returns pending obligations with a deadline before now
	ListOverdueObligations(ctx context.Context, now time.Time) ([]models.PaymentObligation, error)
	UpdateObligationStatus(ctx context.Context, obligationID string, from, to models.PaymentStatus) error

	// RecordPenalty appends a ledger entry; one per payment obligation
	RecordPenalty(ctx context.Context, penalty models.Penalty) error
	GetPenaltiesByUser(ctx context.Context, userID string) ([]models.Penalty, error)
}
