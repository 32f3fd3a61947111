package settlement

import (
	"context"
	"errors"
	"fmt"

	"auction-settlement/internal/biddingerrors"
	"auction-settlement/internal/models"
	"auction-settlement/internal/notify"
	"auction-settlement/internal/ranking"
	"auction-settlement/utils"
)

// sellerAuction loads an auction and checks sellerID owns it and it is in status
func (s *Service) sellerAuction(ctx context.Context, auctionID, sellerID string, status models.AuctionStatus) (models.Auction, error) {
	if auctionID == "" || sellerID == "" {
		return models.Auction{}, fmt.Errorf("settlement: %w - missing auctionID or sellerID", biddingerrors.ErrInvalidInput)
	}
	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("settlement: %w", err)
	}
	if auction.SellerID != sellerID {
		return models.Auction{}, fmt.Errorf("settlement: %w - user %s does not own auction %s", biddingerrors.ErrUnauthorized, sellerID, auctionID)
	}
	if auction.Status != status {
		return models.Auction{}, fmt.Errorf("settlement: %w - auction %s is %s, expected %s", biddingerrors.ErrStateConflict, auctionID, auction.Status, status)
	}
	return auction, nil
}

func sellerGuard(auction models.Auction) models.AuctionGuard {
	return models.AuctionGuard{Status: auction.Status, SellerID: auction.SellerID, Cycle: auction.Cycle}
}

// AcceptHighBid sells a reserve-not-met auction to its high bidder
func (s *Service) AcceptHighBid(ctx context.Context, auctionID, sellerID string) (models.PaymentObligation, error) {
	auction, err := s.sellerAuction(ctx, auctionID, sellerID, models.AuctionEndedReserveNotMet)
	if err != nil {
		return models.PaymentObligation{}, err
	}

	bids, err := s.cycleBids(ctx, auction)
	if err != nil {
		return models.PaymentObligation{}, err
	}
	excluded, err := s.defaulters(ctx, auction)
	if err != nil {
		return models.PaymentObligation{}, err
	}
	high, ok := ranking.NextAfter(bids, "", func(id string) bool { return excluded[id] })
	if !ok {
		return models.PaymentObligation{}, fmt.Errorf("settlement: accept on auction %s: %w", auctionID, biddingerrors.ErrNoEligibleBidder)
	}

	update := models.AuctionUpdate{Status: models.AuctionEndedSuccess}
	if err := s.repo.TransitionAuction(ctx, auctionID, sellerGuard(auction), update); err != nil {
		return models.PaymentObligation{}, fmt.Errorf("settlement: accept on auction %s: %w", auctionID, err)
	}
	utils.Info("seller accepted high bid", map[string]any{
		"auction_id": auctionID,
		"bidder_id":  high.BidderID,
		"amount":     high.Amount,
	})

	return s.award(ctx, auction, high, bids)
}

// Relist restarts a reserve-not-met auction as a fresh bidding cycle
func (s *Service) Relist(ctx context.Context, auctionID, sellerID string) (models.Auction, error) {
	auction, err := s.sellerAuction(ctx, auctionID, sellerID, models.AuctionEndedReserveNotMet)
	if err != nil {
		return models.Auction{}, err
	}

	endTime := s.now().Add(s.policy.RelistDuration)
	update := models.AuctionUpdate{
		Status:    models.AuctionActive,
		EndTime:   &endTime,
		NextCycle: true,
	}
	if err := s.repo.TransitionAuction(ctx, auctionID, sellerGuard(auction), update); err != nil {
		return models.Auction{}, fmt.Errorf("settlement: relist auction %s: %w", auctionID, err)
	}

	relisted, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("settlement: %w", err)
	}
	utils.Info("auction relisted", map[string]any{
		"auction_id": auctionID,
		"cycle":      relisted.Cycle,
		"end_time":   relisted.EndTime,
	})
	notify.Send(ctx, s.notifier, notify.EventAuctionRelisted, sellerID, map[string]any{
		"auction_id": auctionID,
		"end_time":   relisted.EndTime,
	})
	return relisted, nil
}

// NegotiateSecondBidder offers a reserve-not-met auction to the best bidder
// below the high bidder at that bidder's own best bid
func (s *Service) NegotiateSecondBidder(ctx context.Context, auctionID, sellerID string) (models.PaymentObligation, error) {
	auction, err := s.sellerAuction(ctx, auctionID, sellerID, models.AuctionEndedReserveNotMet)
	if err != nil {
		return models.PaymentObligation{}, err
	}

	bids, err := s.cycleBids(ctx, auction)
	if err != nil {
		return models.PaymentObligation{}, err
	}
	high, ok := ranking.Highest(bids)
	if !ok {
		return models.PaymentObligation{}, fmt.Errorf("settlement: negotiate on auction %s: %w", auctionID, biddingerrors.ErrNoEligibleBidder)
	}
	excluded, err := s.defaulters(ctx, auction)
	if err != nil {
		return models.PaymentObligation{}, err
	}
	next, ok := ranking.NextAfter(bids, high.BidderID, func(id string) bool { return excluded[id] })
	if !ok {
		return models.PaymentObligation{}, fmt.Errorf("settlement: negotiate on auction %s: %w", auctionID, biddingerrors.ErrNoEligibleBidder)
	}

	update := models.AuctionUpdate{Status: models.AuctionEndedNegotiating}
	if err := s.repo.TransitionAuction(ctx, auctionID, sellerGuard(auction), update); err != nil {
		return models.PaymentObligation{}, fmt.Errorf("settlement: negotiate on auction %s: %w", auctionID, err)
	}

	obligation, err := s.issueObligation(ctx, auction, next)
	if err != nil {
		return models.PaymentObligation{}, err
	}
	utils.Info("auction offered to second bidder", map[string]any{
		"auction_id": auctionID,
		"bidder_id":  next.BidderID,
		"amount":     next.Amount,
	})
	notify.Send(ctx, s.notifier, notify.EventSecondChanceOffer, next.BidderID, map[string]any{
		"auction_id":       auctionID,
		"amount":           next.Amount,
		"payment_deadline": obligation.PaymentDeadline,
	})
	return obligation, nil
}

// CancelAuction withdraws an active auction that has not received a bid
func (s *Service) CancelAuction(ctx context.Context, auctionID, sellerID string) error {
	auction, err := s.sellerAuction(ctx, auctionID, sellerID, models.AuctionActive)
	if err != nil {
		return err
	}
	if auction.BidCount > 0 {
		return fmt.Errorf("settlement: %w - auction %s already has bids", biddingerrors.ErrStateConflict, auctionID)
	}

	guard := sellerGuard(auction)
	noBids := 0
	guard.BidCount = &noBids
	if err := s.repo.TransitionAuction(ctx, auctionID, guard, models.AuctionUpdate{Status: models.AuctionCancelled}); err != nil {
		return fmt.Errorf("settlement: cancel auction %s: %w", auctionID, err)
	}
	utils.Info("auction cancelled", map[string]any{"auction_id": auctionID})
	return nil
}

// ConfirmPayment marks a pending obligation paid by its buyer
func (s *Service) ConfirmPayment(ctx context.Context, obligationID, userID string) (models.PaymentObligation, error) {
	if obligationID == "" || userID == "" {
		return models.PaymentObligation{}, fmt.Errorf("settlement: %w - missing obligationID or userID", biddingerrors.ErrInvalidInput)
	}
	obligation, err := s.repo.GetObligation(ctx, obligationID)
	if err != nil {
		return models.PaymentObligation{}, fmt.Errorf("settlement: %w", err)
	}
	if obligation.UserID != userID {
		return models.PaymentObligation{}, fmt.Errorf("settlement: %w - obligation %s belongs to another user", biddingerrors.ErrUnauthorized, obligationID)
	}

	if err := s.repo.UpdateObligationStatus(ctx, obligationID, models.PaymentPending, models.PaymentCompleted); err != nil {
		return models.PaymentObligation{}, fmt.Errorf("settlement: confirm payment %s: %w", obligationID, err)
	}
	obligation.Status = models.PaymentCompleted

	auction, err := s.repo.GetAuction(ctx, obligation.AuctionID)
	if err != nil {
		return models.PaymentObligation{}, fmt.Errorf("settlement: %w", err)
	}
	if auction.Status == models.AuctionEndedNegotiating && auction.Cycle == obligation.Cycle {
		guard := models.AuctionGuard{Status: models.AuctionEndedNegotiating, Cycle: obligation.Cycle}
		err := s.repo.TransitionAuction(ctx, auction.AuctionID, guard, models.AuctionUpdate{Status: models.AuctionEndedSuccess})
		if err != nil && !errors.Is(err, biddingerrors.ErrStateConflict) {
			return models.PaymentObligation{}, fmt.Errorf("settlement: confirm payment %s: %w", obligationID, err)
		}
	}

	utils.Info("payment confirmed", map[string]any{
		"obligation_id": obligationID,
		"auction_id":    obligation.AuctionID,
		"user_id":       userID,
	})
	notify.Send(ctx, s.notifier, notify.EventPaymentReceived, auction.SellerID, map[string]any{
		"auction_id": obligation.AuctionID,
		"amount":     obligation.Amount,
	})
	return obligation, nil
}
