package bidding

//go:generate mockgen -source=bidding_service.go -destination=mock_bidding_service.go -package=bidding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-settlement/internal/auctionclock"
	"auction-settlement/internal/biddingerrors"
	"auction-settlement/internal/config"
	"auction-settlement/internal/models"
	"auction-settlement/internal/notify"
	"auction-settlement/internal/repository"
	"auction-settlement/utils"
)

// BuyNowSettler closes an auction that was bought at its buy-now price
type BuyNowSettler interface {
	SettleBuyNow(ctx context.Context, auction models.Auction, bid models.Bid) (models.PaymentObligation, error)
}

// NewAuction is a seller's request to list a vehicle in auction mode
type NewAuction struct {
	Title         string
	StartingPrice int64
	ReservePrice  *int64
	BuyNowPrice   *int64
	EndTime       time.Time
}

// PlacedBid is an accepted bid and the auction end time after it
type PlacedBid struct {
	Bid      models.Bid
	EndTime  time.Time
	Extended bool
}

// BiddingService defines the business logic for auction bidding
type BiddingService struct {
	repo     repository.AuctionDB
	notifier notify.Dispatcher
	policy   config.Policy
	settler  BuyNowSettler
	now      func() time.Time
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB, notifier notify.Dispatcher, policy config.Policy) *BiddingService {
	return &BiddingService{
		repo:     repo,
		notifier: notifier,
		policy:   policy,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source
func (s *BiddingService) WithClock(now func() time.Time) *BiddingService {
	s.now = now
	return s
}

// WithSettler enables buy-now purchases
func (s *BiddingService) WithSettler(settler BuyNowSettler) *BiddingService {
	s.settler = settler
	return s
}

// Now returns the service's current time
func (s *BiddingService) Now() time.Time {
	return s.now()
}

// CreateAuction lists a new auction for sellerID
func (s *BiddingService) CreateAuction(ctx context.Context, sellerID string, req NewAuction) (models.Auction, error) {
	now := s.now()
	if err := validateNewAuction(sellerID, req, now); err != nil {
		return models.Auction{}, err
	}

	auction := models.Auction{
		AuctionID:     utils.GenerateID(),
		SellerID:      sellerID,
		Title:         strings.TrimSpace(req.Title),
		StartingPrice: req.StartingPrice,
		ReservePrice:  req.ReservePrice,
		BuyNowPrice:   req.BuyNowPrice,
		EndTime:       req.EndTime.UTC(),
		Status:        models.AuctionActive,
		Cycle:         1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.CreateAuction(ctx, auction); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction for seller %s: %w", sellerID, err)
	}

	utils.Info("auction created", map[string]any{
		"auction_id": auction.AuctionID,
		"seller_id":  sellerID,
		"end_time":   auction.EndTime,
	})
	return auction, nil
}

func validateNewAuction(sellerID string, req NewAuction, now time.Time) error {
	if sellerID == "" {
		return fmt.Errorf("service: %w - missing seller id", biddingerrors.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("service: %w - missing title", biddingerrors.ErrInvalidInput)
	}
	if req.StartingPrice < 0 {
		return fmt.Errorf("service: %w - negative starting price", biddingerrors.ErrInvalidInput)
	}
	if req.ReservePrice != nil && *req.ReservePrice <= 0 {
		return fmt.Errorf("service: %w - reserve price must be positive", biddingerrors.ErrInvalidInput)
	}
	if req.BuyNowPrice != nil {
		if *req.BuyNowPrice <= req.StartingPrice {
			return fmt.Errorf("service: %w - buy-now price must exceed the starting price", biddingerrors.ErrInvalidInput)
		}
		if req.ReservePrice != nil && *req.BuyNowPrice < *req.ReservePrice {
			return fmt.Errorf("service: %w - buy-now price below reserve", biddingerrors.ErrInvalidInput)
		}
	}
	if !req.EndTime.After(now) {
		return fmt.Errorf("service: %w - end time must be in the future", biddingerrors.ErrInvalidInput)
	}
	return nil
}

// PlaceBid validates and records a bid, extending the auction when it lands
// inside the soft-close window
func (s *BiddingService) PlaceBid(ctx context.Context, auctionID, bidderID string, amount int64) (PlacedBid, error) {
	if auctionID == "" || bidderID == "" {
		return PlacedBid{}, fmt.Errorf("service: %w - missing auctionID or bidderID", biddingerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return PlacedBid{}, fmt.Errorf("service: %w - non-positive bid amount", biddingerrors.ErrInvalidBid)
	}

	now := s.now()
	auction, err := s.biddable(ctx, auctionID, bidderID, now)
	if err != nil {
		return PlacedBid{}, err
	}
	if amount < auction.StartingPrice {
		return PlacedBid{}, fmt.Errorf("service: %w - starting price is %d", biddingerrors.ErrBidTooLow, auction.StartingPrice)
	}
	if amount <= auction.CurrentBid {
		return PlacedBid{}, fmt.Errorf("service: %w - current highest bid is %d", biddingerrors.ErrBidTooLow, auction.CurrentBid)
	}

	var extendTo *time.Time
	if candidate, ok := auctionclock.ExtensionFor(now, auction.EndTime, s.policy.SoftCloseWindow, s.policy.SoftCloseExtension); ok {
		extendTo = &candidate
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		AuctionID: auctionID,
		Cycle:     auction.Cycle,
		BidderID:  bidderID,
		Amount:    amount,
		PlacedAt:  now,
	}
	receipt, err := s.repo.RecordBid(ctx, bid, extendTo, s.policy.MaxExtensions)
	if err != nil {
		return PlacedBid{}, fmt.Errorf("service: failed to record bid for auction %s by user %s: %w", auctionID, bidderID, err)
	}

	utils.Info("bid placed", map[string]any{
		"auction_id": auctionID,
		"bidder_id":  bidderID,
		"amount":     amount,
		"extended":   receipt.Extended,
	})

	if prev := receipt.Previous; prev != nil && prev.BidderID != bidderID {
		notify.Send(ctx, s.notifier, notify.EventOutbid, prev.BidderID, map[string]any{
			"auction_id": auctionID,
			"title":      auction.Title,
			"new_amount": amount,
		})
	}
	if receipt.Extended {
		notify.Send(ctx, s.notifier, notify.EventAuctionExtended, auction.SellerID, map[string]any{
			"auction_id": auctionID,
			"end_time":   receipt.EndTime,
		})
	}

	return PlacedBid{Bid: bid, EndTime: receipt.EndTime, Extended: receipt.Extended}, nil
}

// BuyNow purchases an active auction at its buy-now price
func (s *BiddingService) BuyNow(ctx context.Context, auctionID, buyerID string) (models.PaymentObligation, error) {
	if auctionID == "" || buyerID == "" {
		return models.PaymentObligation{}, fmt.Errorf("service: %w - missing auctionID or buyerID", biddingerrors.ErrInvalidInput)
	}
	if s.settler == nil {
		return models.PaymentObligation{}, errors.New("service: buy-now is not enabled")
	}

	now := s.now()
	auction, err := s.biddable(ctx, auctionID, buyerID, now)
	if err != nil {
		return models.PaymentObligation{}, err
	}
	if auction.BuyNowPrice == nil {
		return models.PaymentObligation{}, fmt.Errorf("service: %w - auction %s has no buy-now price", biddingerrors.ErrInvalidInput, auctionID)
	}
	if auction.CurrentBid >= *auction.BuyNowPrice {
		return models.PaymentObligation{}, fmt.Errorf("service: %w - bidding has passed the buy-now price", biddingerrors.ErrStateConflict)
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		AuctionID: auctionID,
		Cycle:     auction.Cycle,
		BidderID:  buyerID,
		Amount:    *auction.BuyNowPrice,
		BuyNow:    true,
		PlacedAt:  now,
	}
	receipt, err := s.repo.RecordBid(ctx, bid, nil, 0)
	if err != nil {
		return models.PaymentObligation{}, fmt.Errorf("service: failed to record buy-now for auction %s: %w", auctionID, err)
	}
	if prev := receipt.Previous; prev != nil && prev.BidderID != buyerID {
		notify.Send(ctx, s.notifier, notify.EventOutbid, prev.BidderID, map[string]any{
			"auction_id": auctionID,
			"title":      auction.Title,
			"new_amount": bid.Amount,
		})
	}

	obligation, err := s.settler.SettleBuyNow(ctx, auction, bid)
	if err != nil {
		return models.PaymentObligation{}, fmt.Errorf("service: failed to settle buy-now for auction %s: %w", auctionID, err)
	}
	return obligation, nil
}

// biddable loads an auction and checks userID may bid on it at now
func (s *BiddingService) biddable(ctx context.Context, auctionID, userID string, now time.Time) (models.Auction, error) {
	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}
	if auction.SellerID == userID {
		return models.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrSelfBid)
	}
	if auction.Status != models.AuctionActive || auctionclock.IsExpired(now, auction.EndTime) {
		return models.Auction{}, fmt.Errorf("service: %w - auction %s is %s", biddingerrors.ErrAuctionClosed, auctionID, auction.Status)
	}
	return auction, nil
}

// GetAuction returns an auction by id
func (s *BiddingService) GetAuction(ctx context.Context, auctionID string) (models.Auction, error) {
	if auctionID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - empty auction ID", biddingerrors.ErrInvalidInput)
	}
	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// GetBidsForAuction returns the current cycle's bids, highest first
func (s *BiddingService) GetBidsForAuction(ctx context.Context, auctionID string) ([]models.Bid, error) {
	auction, err := s.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	bids, err := s.repo.GetBidsByAuction(ctx, auctionID, auction.Cycle)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// GetWinningBid returns the current cycle's highest bid
func (s *BiddingService) GetWinningBid(ctx context.Context, auctionID string) (models.Bid, error) {
	auction, err := s.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Bid{}, err
	}

	winningBid, err := s.repo.GetWinningBid(ctx, auctionID, auction.Cycle)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid for auction %s: %w", auctionID, err)
	}
	return winningBid, nil
}

// GetAuctionsByBidder returns all auctions a user has placed bids on
func (s *BiddingService) GetAuctionsByBidder(ctx context.Context, bidderID string) ([]models.Auction, error) {
	if bidderID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", biddingerrors.ErrInvalidInput)
	}

	auctions, err := s.repo.GetAuctionsByBidder(ctx, bidderID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get auctions for user %s: %w", bidderID, err)
	}
	return auctions, nil
}
