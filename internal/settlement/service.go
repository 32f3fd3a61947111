package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-settlement/internal/auctionclock"
	"auction-settlement/internal/biddingerrors"
	"auction-settlement/internal/config"
	"auction-settlement/internal/models"
	"auction-settlement/internal/notify"
	"auction-settlement/internal/ranking"
	"auction-settlement/internal/repository"
	"auction-settlement/utils"

	"github.com/shopspring/decimal"
)

// Service applies settlement outcomes, seller decisions and payment defaults
type Service struct {
	repo     repository.AuctionDB
	notifier notify.Dispatcher
	policy   config.Policy
	now      func() time.Time
}

// NewService creates a settlement service
func NewService(repo repository.AuctionDB, notifier notify.Dispatcher, policy config.Policy) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		policy:   policy,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SweepReport summarizes one run of a sweep
type SweepReport struct {
	Scanned   int      `json:"scanned"`
	Processed int      `json:"processed"`
	Skipped   int      `json:"skipped"`
	Reoffered int      `json:"reoffered,omitempty"`
	Exhausted int      `json:"exhausted"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

func (r *SweepReport) fail(id string, err error) {
	r.Failed++
	r.Errors = append(r.Errors, fmt.Sprintf("%s: %v", id, err))
}

// Preview decides an auction's outcome from its current bids without changing it
func (s *Service) Preview(ctx context.Context, auctionID string) (Outcome, error) {
	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return Outcome{}, fmt.Errorf("settlement: %w", err)
	}
	bids, err := s.cycleBids(ctx, auction)
	if err != nil {
		return Outcome{}, err
	}
	return Decide(auction, bids), nil
}

// CloseAuction settles an active auction whose end time has passed
func (s *Service) CloseAuction(ctx context.Context, auctionID string) (Outcome, error) {
	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return Outcome{}, fmt.Errorf("settlement: %w", err)
	}

	now := s.now()
	if auction.Status != models.AuctionActive {
		return Outcome{}, fmt.Errorf("settlement: %w - auction %s is %s", biddingerrors.ErrStateConflict, auctionID, auction.Status)
	}
	if !auctionclock.IsExpired(now, auction.EndTime) {
		return Outcome{}, fmt.Errorf("settlement: %w - auction %s ends at %s", biddingerrors.ErrStateConflict, auctionID, auction.EndTime.Format(time.RFC3339))
	}

	bids, err := s.cycleBids(ctx, auction)
	if err != nil {
		return Outcome{}, err
	}
	outcome := Decide(auction, bids)

	update := models.AuctionUpdate{Status: outcome.status()}
	if outcome.Kind == OutcomeReserveNotMet {
		deadline := now.Add(s.policy.DecisionWindow)
		update.DecisionDeadline = &deadline
	}
	// a bid recorded after the read above changes bid_count and voids this decision
	guard := models.AuctionGuard{Status: models.AuctionActive, EndedBy: &now, Cycle: auction.Cycle, BidCount: &auction.BidCount}
	if err := s.repo.TransitionAuction(ctx, auctionID, guard, update); err != nil {
		return Outcome{}, fmt.Errorf("settlement: close auction %s: %w", auctionID, err)
	}

	utils.Info("auction closed", map[string]any{
		"auction_id": auctionID,
		"outcome":    string(outcome.Kind),
		"amount":     outcome.Amount,
	})

	switch outcome.Kind {
	case OutcomeNoBids:
		notify.Send(ctx, s.notifier, notify.EventAuctionUnsold, auction.SellerID, map[string]any{
			"auction_id": auctionID,
			"reason":     "no_bids",
		})
	case OutcomeReserveNotMet:
		notify.Send(ctx, s.notifier, notify.EventReserveNotMet, auction.SellerID, map[string]any{
			"auction_id":        auctionID,
			"high_bid":          outcome.Amount,
			"second_bid_exists": outcome.SecondBidExists,
			"decision_deadline": *update.DecisionDeadline,
		})
	case OutcomeReserveMet:
		if _, err := s.award(ctx, auction, *outcome.HighBid, bids); err != nil {
			return outcome, err
		}
	}
	return outcome, nil
}

// CloseEndedAuctions settles every active auction past its end time.
// One failing auction does not stop the others.
func (s *Service) CloseEndedAuctions(ctx context.Context) (SweepReport, error) {
	due, err := s.repo.ListAuctionsDue(ctx, s.now())
	if err != nil {
		return SweepReport{}, fmt.Errorf("settlement: %w", err)
	}

	report := SweepReport{Scanned: len(due)}
	for _, auction := range due {
		if ctx.Err() != nil {
			report.fail(auction.AuctionID, ctx.Err())
			continue
		}
		_, err := s.CloseAuction(ctx, auction.AuctionID)
		switch {
		case err == nil:
			report.Processed++
		case errors.Is(err, biddingerrors.ErrStateConflict):
			report.Skipped++
			utils.Debug("auction already closed", map[string]any{"auction_id": auction.AuctionID})
		default:
			report.fail(auction.AuctionID, err)
			utils.Error("failed to close auction", map[string]any{
				"auction_id": auction.AuctionID,
				"error":      err.Error(),
			})
		}
	}

	utils.Info("process auctions sweep finished", map[string]any{
		"scanned":   report.Scanned,
		"processed": report.Processed,
		"skipped":   report.Skipped,
		"failed":    report.Failed,
	})
	return report, nil
}

// SettleBuyNow ends an active auction after a buy-now bid was recorded
func (s *Service) SettleBuyNow(ctx context.Context, auction models.Auction, bid models.Bid) (models.PaymentObligation, error) {
	guard := models.AuctionGuard{Status: models.AuctionActive, Cycle: auction.Cycle, HighBid: &bid.Amount}
	update := models.AuctionUpdate{Status: models.AuctionEndedSuccess}
	if err := s.repo.TransitionAuction(ctx, auction.AuctionID, guard, update); err != nil {
		return models.PaymentObligation{}, fmt.Errorf("settlement: buy now %s: %w", auction.AuctionID, err)
	}

	bids, err := s.cycleBids(ctx, auction)
	if err != nil {
		return models.PaymentObligation{}, err
	}
	return s.award(ctx, auction, bid, bids)
}

// award issues the winner's obligation and tells every bidder the result
func (s *Service) award(ctx context.Context, auction models.Auction, winner models.Bid, bids []models.Bid) (models.PaymentObligation, error) {
	obligation, err := s.issueObligation(ctx, auction, winner)
	if err != nil {
		return models.PaymentObligation{}, err
	}

	notify.Send(ctx, s.notifier, notify.EventAuctionWon, winner.BidderID, map[string]any{
		"auction_id":       auction.AuctionID,
		"amount":           winner.Amount,
		"payment_deadline": obligation.PaymentDeadline,
	})
	notify.Send(ctx, s.notifier, notify.EventAuctionSold, auction.SellerID, map[string]any{
		"auction_id": auction.AuctionID,
		"amount":     winner.Amount,
		"commission": obligation.Commission.String(),
	})
	for _, b := range ranking.Bidders(bids) {
		if b.BidderID != winner.BidderID {
			notify.Send(ctx, s.notifier, notify.EventAuctionLost, b.BidderID, map[string]any{
				"auction_id": auction.AuctionID,
			})
		}
	}
	return obligation, nil
}

// issueObligation creates a pending obligation for bid's bidder at bid's amount
func (s *Service) issueObligation(ctx context.Context, auction models.Auction, bid models.Bid) (models.PaymentObligation, error) {
	now := s.now()
	obligation := models.PaymentObligation{
		ObligationID:    utils.GenerateID(),
		AuctionID:       auction.AuctionID,
		Cycle:           auction.Cycle,
		UserID:          bid.BidderID,
		Amount:          bid.Amount,
		Commission:      s.Commission(bid.Amount),
		Status:          models.PaymentPending,
		PaymentDeadline: now.Add(s.policy.PaymentWindow),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.CreateObligation(ctx, obligation); err != nil {
		return models.PaymentObligation{}, fmt.Errorf("settlement: obligation for auction %s: %w", auction.AuctionID, err)
	}

	utils.Info("payment obligation created", map[string]any{
		"auction_id":    auction.AuctionID,
		"obligation_id": obligation.ObligationID,
		"user_id":       obligation.UserID,
		"amount":        obligation.Amount,
	})
	return obligation, nil
}

// Commission is the platform fee for a sale: amount * rate, capped
func (s *Service) Commission(amount int64) decimal.Decimal {
	fee := decimal.NewFromInt(amount).Mul(s.policy.CommissionRate)
	if fee.GreaterThan(s.policy.CommissionCap) {
		fee = s.policy.CommissionCap
	}
	return fee.Round(2)
}

// cycleBids returns the bids of the auction's current cycle; none is not an error
func (s *Service) cycleBids(ctx context.Context, auction models.Auction) ([]models.Bid, error) {
	bids, err := s.repo.GetBidsByAuction(ctx, auction.AuctionID, auction.Cycle)
	if errors.Is(err, biddingerrors.ErrNoBids) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settlement: %w", err)
	}
	return bids, nil
}

// defaulters returns the users whose obligations in this cycle were cancelled for non-payment
func (s *Service) defaulters(ctx context.Context, auction models.Auction) (map[string]bool, error) {
	obligations, err := s.repo.GetObligationsByAuction(ctx, auction.AuctionID)
	if err != nil {
		return nil, fmt.Errorf("settlement: %w", err)
	}
	out := make(map[string]bool)
	for _, o := range obligations {
		if o.Cycle == auction.Cycle && o.Status == models.PaymentCancelledNoPayment {
			out[o.UserID] = true
		}
	}
	return out, nil
}

// Obligations returns an auction's payment obligations, oldest first
func (s *Service) Obligations(ctx context.Context, auctionID string) ([]models.PaymentObligation, error) {
	if _, err := s.repo.GetAuction(ctx, auctionID); err != nil {
		return nil, fmt.Errorf("settlement: %w", err)
	}
	obligations, err := s.repo.GetObligationsByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("settlement: %w", err)
	}
	return obligations, nil
}

// Reputation is a user's score after penalties
type Reputation struct {
	UserID         string           `json:"user_id"`
	Score          int              `json:"score"`
	PointsDeducted int              `json:"points_deducted"`
	Penalties      []models.Penalty `json:"penalties"`
}

// Reputation computes a user's reputation from the penalty ledger
func (s *Service) Reputation(ctx context.Context, userID string) (Reputation, error) {
	if userID == "" {
		return Reputation{}, fmt.Errorf("settlement: %w - empty user ID", biddingerrors.ErrInvalidInput)
	}
	penalties, err := s.repo.GetPenaltiesByUser(ctx, userID)
	if err != nil {
		return Reputation{}, fmt.Errorf("settlement: %w", err)
	}

	rep := Reputation{UserID: userID, Penalties: penalties}
	if rep.Penalties == nil {
		rep.Penalties = []models.Penalty{}
	}
	for _, p := range penalties {
		rep.PointsDeducted += p.PointsDeducted
	}
	rep.Score = s.policy.ReputationBase - rep.PointsDeducted
	return rep, nil
}
