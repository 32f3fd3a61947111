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

const defaultReason = "Payment not received by deadline."

// CascadeResult describes what a cascade step did
type CascadeResult struct {
	Defaulted     models.PaymentObligation  `json:"defaulted"`
	Penalized     bool                      `json:"penalized"`
	Next          *models.PaymentObligation `json:"next,omitempty"`
	AuctionStatus models.AuctionStatus      `json:"auction_status"`
}

// Cascade cancels an overdue pending obligation, penalizes its buyer and
// offers the auction to the next eligible bidder. Only the caller that
// cancels the obligation proceeds; any later call returns ErrStateConflict.
func (s *Service) Cascade(ctx context.Context, obligationID string) (CascadeResult, error) {
	obligation, err := s.repo.GetObligation(ctx, obligationID)
	if err != nil {
		return CascadeResult{}, fmt.Errorf("cascade: %w", err)
	}

	now := s.now()
	if obligation.Status != models.PaymentPending {
		return CascadeResult{}, fmt.Errorf("cascade: %w - obligation %s is %s", biddingerrors.ErrStateConflict, obligationID, obligation.Status)
	}
	if !obligation.PaymentDeadline.Before(now) {
		return CascadeResult{}, fmt.Errorf("cascade: %w - obligation %s is not overdue", biddingerrors.ErrStateConflict, obligationID)
	}

	if err := s.repo.UpdateObligationStatus(ctx, obligationID, models.PaymentPending, models.PaymentCancelledNoPayment); err != nil {
		return CascadeResult{}, fmt.Errorf("cascade: %w", err)
	}
	obligation.Status = models.PaymentCancelledNoPayment
	result := CascadeResult{Defaulted: obligation}

	penalty := models.Penalty{
		PenaltyID:      utils.GenerateID(),
		UserID:         obligation.UserID,
		PaymentID:      obligation.ObligationID,
		PointsDeducted: s.policy.PenaltyPoints,
		Reason:         defaultReason,
		CreatedAt:      now,
	}
	switch err := s.repo.RecordPenalty(ctx, penalty); {
	case err == nil:
		result.Penalized = true
	case errors.Is(err, biddingerrors.ErrStateConflict):
	default:
		// the obligation is already cancelled; the next bidder still gets the offer
		utils.Error("failed to record penalty", map[string]any{
			"obligation_id": obligationID,
			"user_id":       obligation.UserID,
			"error":         err.Error(),
		})
	}

	utils.Warn("payment defaulted", map[string]any{
		"obligation_id": obligationID,
		"auction_id":    obligation.AuctionID,
		"user_id":       obligation.UserID,
		"points":        s.policy.PenaltyPoints,
	})
	notify.Send(ctx, s.notifier, notify.EventPaymentDefaulted, obligation.UserID, map[string]any{
		"auction_id": obligation.AuctionID,
		"points":     s.policy.PenaltyPoints,
	})

	auction, err := s.repo.GetAuction(ctx, obligation.AuctionID)
	if err != nil {
		return result, fmt.Errorf("cascade: %w", err)
	}
	result.AuctionStatus = auction.Status
	if auction.Cycle != obligation.Cycle {
		return result, nil
	}

	switch auction.Status {
	case models.AuctionEndedSuccess:
		return s.offerNext(ctx, auction, obligation, result)
	case models.AuctionEndedNegotiating:
		return s.returnToSeller(ctx, auction, result)
	default:
		return result, nil
	}
}

// offerNext creates an obligation for the best bidder ranked below the
// defaulter who has not defaulted in this cycle, or marks the auction unsold
func (s *Service) offerNext(ctx context.Context, auction models.Auction, defaulted models.PaymentObligation, result CascadeResult) (CascadeResult, error) {
	obligation, err := s.offerAfter(ctx, auction, defaulted.UserID)
	switch {
	case err == nil:
		result.Next = &obligation
	case errors.Is(err, biddingerrors.ErrNoEligibleBidder):
		result.AuctionStatus = models.AuctionEndedUnsold
	}
	return result, err
}

// offerAfter walks the ranking below bidderID ("" starts at the top), skips
// this cycle's defaulters and issues the first remaining bidder an
// obligation. With nobody left the auction moves to ended_unsold.
func (s *Service) offerAfter(ctx context.Context, auction models.Auction, bidderID string) (models.PaymentObligation, error) {
	bids, err := s.cycleBids(ctx, auction)
	if err != nil {
		return models.PaymentObligation{}, fmt.Errorf("cascade: %w", err)
	}
	excluded, err := s.defaulters(ctx, auction)
	if err != nil {
		return models.PaymentObligation{}, fmt.Errorf("cascade: %w", err)
	}

	next, ok := ranking.NextAfter(bids, bidderID, func(id string) bool { return excluded[id] })
	if !ok {
		guard := models.AuctionGuard{Status: models.AuctionEndedSuccess, Cycle: auction.Cycle}
		if err := s.repo.TransitionAuction(ctx, auction.AuctionID, guard, models.AuctionUpdate{Status: models.AuctionEndedUnsold}); err != nil {
			return models.PaymentObligation{}, fmt.Errorf("cascade: %w", err)
		}
		utils.Warn("cascade exhausted, auction unsold", map[string]any{"auction_id": auction.AuctionID})
		notify.Send(ctx, s.notifier, notify.EventAuctionUnsold, auction.SellerID, map[string]any{
			"auction_id": auction.AuctionID,
			"reason":     "no_eligible_bidder",
		})
		return models.PaymentObligation{}, fmt.Errorf("cascade: auction %s: %w", auction.AuctionID, biddingerrors.ErrNoEligibleBidder)
	}

	obligation, err := s.issueObligation(ctx, auction, next)
	if err != nil {
		return models.PaymentObligation{}, fmt.Errorf("cascade: %w", err)
	}

	// nobody defaulted yet: the top bidder never got the winning notice
	event := notify.EventSecondChanceOffer
	if len(excluded) == 0 {
		event = notify.EventAuctionWon
	}
	notify.Send(ctx, s.notifier, event, next.BidderID, map[string]any{
		"auction_id":       auction.AuctionID,
		"amount":           next.Amount,
		"payment_deadline": obligation.PaymentDeadline,
	})
	return obligation, nil
}

// reoffer issues an obligation for an ended_success auction that has none
// open, as left behind when issuing it failed after a close or a cascade
// step. The auction goes to the best bidder who has not defaulted in the
// current cycle, or to ended_unsold when none remain.
func (s *Service) reoffer(ctx context.Context, auctionID string) (models.PaymentObligation, error) {
	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return models.PaymentObligation{}, fmt.Errorf("cascade: %w", err)
	}
	if auction.Status != models.AuctionEndedSuccess {
		return models.PaymentObligation{}, fmt.Errorf("cascade: %w - auction %s is %s", biddingerrors.ErrStateConflict, auctionID, auction.Status)
	}

	obligations, err := s.repo.GetObligationsByAuction(ctx, auctionID)
	if err != nil {
		return models.PaymentObligation{}, fmt.Errorf("cascade: %w", err)
	}
	for _, o := range obligations {
		if o.Status.Open() {
			return models.PaymentObligation{}, fmt.Errorf("cascade: %w - obligation %s is %s", biddingerrors.ErrStateConflict, o.ObligationID, o.Status)
		}
	}

	obligation, err := s.offerAfter(ctx, auction, "")
	if err != nil {
		return models.PaymentObligation{}, err
	}
	utils.Warn("stranded auction re-offered", map[string]any{
		"auction_id":    auctionID,
		"obligation_id": obligation.ObligationID,
		"user_id":       obligation.UserID,
	})
	return obligation, nil
}

// reofferStranded runs reoffer over every ended_success auction
func (s *Service) reofferStranded(ctx context.Context, report *SweepReport) {
	auctions, err := s.repo.ListAuctionsByStatus(ctx, models.AuctionEndedSuccess)
	if err != nil {
		report.fail(string(models.AuctionEndedSuccess), err)
		utils.Error("failed to list sold auctions", map[string]any{"error": err.Error()})
		return
	}

	for _, auction := range auctions {
		if ctx.Err() != nil {
			report.fail(auction.AuctionID, ctx.Err())
			continue
		}
		_, err := s.reoffer(ctx, auction.AuctionID)
		switch {
		case err == nil:
			report.Reoffered++
		case errors.Is(err, biddingerrors.ErrNoEligibleBidder):
			report.Reoffered++
			report.Exhausted++
		case errors.Is(err, biddingerrors.ErrStateConflict):
		default:
			report.fail(auction.AuctionID, err)
			utils.Error("failed to re-offer auction", map[string]any{
				"auction_id": auction.AuctionID,
				"error":      err.Error(),
			})
		}
	}
}

// returnToSeller hands a negotiating auction back to the seller's decision
func (s *Service) returnToSeller(ctx context.Context, auction models.Auction, result CascadeResult) (CascadeResult, error) {
	deadline := s.now().Add(s.policy.DecisionWindow)
	guard := models.AuctionGuard{Status: models.AuctionEndedNegotiating, Cycle: auction.Cycle}
	update := models.AuctionUpdate{Status: models.AuctionEndedReserveNotMet, DecisionDeadline: &deadline}
	if err := s.repo.TransitionAuction(ctx, auction.AuctionID, guard, update); err != nil {
		return result, fmt.Errorf("cascade: %w", err)
	}
	result.AuctionStatus = models.AuctionEndedReserveNotMet

	bids, err := s.cycleBids(ctx, auction)
	if err != nil {
		return result, fmt.Errorf("cascade: %w", err)
	}
	excluded, err := s.defaulters(ctx, auction)
	if err != nil {
		return result, fmt.Errorf("cascade: %w", err)
	}
	high, _ := ranking.Highest(bids)
	_, another := ranking.NextAfter(bids, high.BidderID, func(id string) bool { return excluded[id] })

	notify.Send(ctx, s.notifier, notify.EventReserveNotMet, auction.SellerID, map[string]any{
		"auction_id":        auction.AuctionID,
		"high_bid":          high.Amount,
		"second_bid_exists": another,
		"decision_deadline": deadline,
	})
	return result, nil
}

// SweepOverduePayments cascades every pending obligation past its deadline,
// then re-offers sold auctions left without an open obligation.
// Conflicts mean another run got there first; other failures are counted
// and the sweep moves on.
func (s *Service) SweepOverduePayments(ctx context.Context) (SweepReport, error) {
	overdue, err := s.repo.ListOverdueObligations(ctx, s.now())
	if err != nil {
		return SweepReport{}, fmt.Errorf("cascade: %w", err)
	}

	report := SweepReport{Scanned: len(overdue)}
	for _, o := range overdue {
		if ctx.Err() != nil {
			report.fail(o.ObligationID, ctx.Err())
			continue
		}
		_, err := s.Cascade(ctx, o.ObligationID)
		switch {
		case err == nil:
			report.Processed++
		case errors.Is(err, biddingerrors.ErrNoEligibleBidder):
			report.Processed++
			report.Exhausted++
		case errors.Is(err, biddingerrors.ErrStateConflict):
			report.Skipped++
			utils.Debug("obligation already handled", map[string]any{"obligation_id": o.ObligationID})
		default:
			report.fail(o.ObligationID, err)
			utils.Error("failed to process overdue payment", map[string]any{
				"obligation_id": o.ObligationID,
				"error":         err.Error(),
			})
		}
	}

	s.reofferStranded(ctx, &report)

	utils.Info("overdue payments sweep finished", map[string]any{
		"scanned":   report.Scanned,
		"processed": report.Processed,
		"reoffered": report.Reoffered,
		"exhausted": report.Exhausted,
		"skipped":   report.Skipped,
		"failed":    report.Failed,
	})
	return report, nil
}
