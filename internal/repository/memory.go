package repository

import (
	"auction-settlement/internal/biddingerrors"
	"auction-settlement/internal/models"
	"auction-settlement/internal/ranking"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB.
// A single mutex serializes writers, which makes every guarded write atomic.
type MemoryRepo struct {
	mu          sync.RWMutex
	auctions    map[string]models.Auction           // key: auctionID
	bids        map[string][]models.Bid             // key: auctionID -> bids of every cycle
	obligations map[string]models.PaymentObligation // key: obligationID
	byAuction   map[string][]string                 // key: auctionID -> obligation ids in creation order
	penalties   map[string][]models.Penalty         // key: userID
	penalized   map[string]struct{}                 // key: paymentID
	userAuction map[string][]string                 // key: bidderID -> auction ids the user has bid on
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions:    make(map[string]models.Auction),
		bids:        make(map[string][]models.Bid),
		obligations: make(map[string]models.PaymentObligation),
		byAuction:   make(map[string][]string),
		penalties:   make(map[string][]models.Penalty),
		penalized:   make(map[string]struct{}),
		userAuction: make(map[string][]string),
	}
}

// CreateAuction stores a new auction
func (r *MemoryRepo) CreateAuction(_ context.Context, auction models.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if auction.AuctionID == "" {
		return fmt.Errorf("create auction: %w - empty auction id", biddingerrors.ErrInvalidInput)
	}
	if _, ok := r.auctions[auction.AuctionID]; ok {
		return fmt.Errorf("create auction %s: %w - already exists", auction.AuctionID, biddingerrors.ErrStateConflict)
	}
	if auction.Cycle == 0 {
		auction.Cycle = 1
	}
	r.auctions[auction.AuctionID] = auction
	return nil
}

// GetAuction returns an auction by id
func (r *MemoryRepo) GetAuction(_ context.Context, auctionID string) (models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return models.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	return a, nil
}

// ListAuctionsDue returns active auctions that reached their end time
func (r *MemoryRepo) ListAuctionsDue(_ context.Context, now time.Time) ([]models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var due []models.Auction
	for _, a := range r.auctions {
		if a.Status == models.AuctionActive && !a.EndTime.After(now) {
			due = append(due, a)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].EndTime.Before(due[j].EndTime) })
	return due, nil
}

// ListAuctionsByStatus returns the auctions in status, least recently updated first
func (r *MemoryRepo) ListAuctionsByStatus(_ context.Context, status models.AuctionStatus) ([]models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Auction
	for _, a := range r.auctions {
		if a.Status == status {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	return out, nil
}

// GetAuctionsByBidder returns all auctions a user has bid on
func (r *MemoryRepo) GetAuctionsByBidder(_ context.Context, bidderID string) ([]models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids, ok := r.userAuction[bidderID]
	if !ok || len(ids) == 0 {
		return nil, fmt.Errorf("get auctions for user %s: %w", bidderID, biddingerrors.ErrUserNoBids)
	}

	auctions := make([]models.Auction, 0, len(ids))
	for _, id := range ids {
		if a, exists := r.auctions[id]; exists {
			auctions = append(auctions, a)
		}
	}
	return auctions, nil
}

// TransitionAuction applies update when the auction matches guard
func (r *MemoryRepo) TransitionAuction(_ context.Context, auctionID string, guard models.AuctionGuard, update models.AuctionUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return fmt.Errorf("transition auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	if !matches(a, guard) {
		return fmt.Errorf("transition auction %s from %s: %w - current status %s", auctionID, guard.Status, biddingerrors.ErrStateConflict, a.Status)
	}

	a.Status = update.Status
	if update.EndTime != nil {
		a.EndTime = *update.EndTime
	}
	a.DecisionDeadline = update.DecisionDeadline
	if update.NextCycle {
		a.Cycle++
		a.CurrentBid = 0
		a.BidCount = 0
		a.ExtensionCount = 0
	}
	a.UpdatedAt = time.Now().UTC()
	r.auctions[auctionID] = a
	return nil
}

func matches(a models.Auction, g models.AuctionGuard) bool {
	if a.Status != g.Status {
		return false
	}
	if g.SellerID != "" && a.SellerID != g.SellerID {
		return false
	}
	if g.EndedBy != nil && a.EndTime.After(*g.EndedBy) {
		return false
	}
	if g.Cycle != 0 && a.Cycle != g.Cycle {
		return false
	}
	if g.HighBid != nil && a.CurrentBid != *g.HighBid {
		return false
	}
	if g.BidCount != nil && a.BidCount != *g.BidCount {
		return false
	}
	return true
}

// RecordBid appends a bid and raises the auction's high bid and end time
func (r *MemoryRepo) RecordBid(_ context.Context, bid models.Bid, extendTo *time.Time, maxExtensions int) (models.BidReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[bid.AuctionID]
	if !ok {
		return models.BidReceipt{}, fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, biddingerrors.ErrAuctionNotFound)
	}
	if a.Status != models.AuctionActive || a.Cycle != bid.Cycle || !bid.PlacedAt.Before(a.EndTime) {
		return models.BidReceipt{}, fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, biddingerrors.ErrAuctionClosed)
	}
	if bid.Amount <= a.CurrentBid {
		return models.BidReceipt{}, fmt.Errorf("record bid for auction %s: %w - current highest bid is %d", bid.AuctionID, biddingerrors.ErrBidTooLow, a.CurrentBid)
	}

	var receipt models.BidReceipt
	if prev, found := ranking.Highest(r.cycleBids(a.AuctionID, a.Cycle)); found {
		receipt.Previous = &prev
	}

	r.bids[bid.AuctionID] = append(r.bids[bid.AuctionID], bid)
	a.CurrentBid = bid.Amount
	a.BidCount++
	if extendTo != nil && extendTo.After(a.EndTime) && (maxExtensions == 0 || a.ExtensionCount < maxExtensions) {
		a.EndTime = *extendTo
		a.ExtensionCount++
		receipt.Extended = true
	}
	a.UpdatedAt = time.Now().UTC()
	r.auctions[a.AuctionID] = a
	receipt.EndTime = a.EndTime

	for _, id := range r.userAuction[bid.BidderID] {
		if id == bid.AuctionID {
			return receipt, nil
		}
	}
	r.userAuction[bid.BidderID] = append(r.userAuction[bid.BidderID], bid.AuctionID)

	return receipt, nil
}

func (r *MemoryRepo) cycleBids(auctionID string, cycle int) []models.Bid {
	var out []models.Bid
	for _, b := range r.bids[auctionID] {
		if b.Cycle == cycle {
			out = append(out, b)
		}
	}
	return out
}

// GetBidsByAuction returns the bids of a cycle in precedence order
func (r *MemoryRepo) GetBidsByAuction(_ context.Context, auctionID string, cycle int) ([]models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	bids := r.cycleBids(auctionID, cycle)
	if len(bids) == 0 {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, biddingerrors.ErrNoBids)
	}
	ranking.Sort(bids)
	return bids, nil
}

// GetWinningBid returns the highest bid of a cycle
func (r *MemoryRepo) GetWinningBid(_ context.Context, auctionID string, cycle int) (models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return models.Bid{}, fmt.Errorf("get winning bid for auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	winning, ok := ranking.Highest(r.cycleBids(auctionID, cycle))
	if !ok {
		return models.Bid{}, fmt.Errorf("get winning bid for auction %s: %w", auctionID, biddingerrors.ErrNoBids)
	}
	return winning, nil
}

// CreateObligation stores an obligation unless the auction already has an open one
func (r *MemoryRepo) CreateObligation(_ context.Context, obligation models.PaymentObligation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[obligation.AuctionID]; !ok {
		return fmt.Errorf("create obligation for auction %s: %w", obligation.AuctionID, biddingerrors.ErrAuctionNotFound)
	}
	for _, id := range r.byAuction[obligation.AuctionID] {
		if existing := r.obligations[id]; existing.Status.Open() {
			return fmt.Errorf("create obligation for auction %s: %w - obligation %s is %s",
				obligation.AuctionID, biddingerrors.ErrStateConflict, existing.ObligationID, existing.Status)
		}
	}

	r.obligations[obligation.ObligationID] = obligation
	r.byAuction[obligation.AuctionID] = append(r.byAuction[obligation.AuctionID], obligation.ObligationID)
	return nil
}

// GetObligation returns an obligation by id
func (r *MemoryRepo) GetObligation(_ context.Context, obligationID string) (models.PaymentObligation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.obligations[obligationID]
	if !ok {
		return models.PaymentObligation{}, fmt.Errorf("get obligation %s: %w", obligationID, biddingerrors.ErrObligationNotFound)
	}
	return o, nil
}

// GetObligationsByAuction returns an auction's obligations in creation order
func (r *MemoryRepo) GetObligationsByAuction(_ context.Context, auctionID string) ([]models.PaymentObligation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byAuction[auctionID]
	out := make([]models.PaymentObligation, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.obligations[id])
	}
	return out, nil
}

// ListOverdueObligations returns pending obligations past their deadline
func (r *MemoryRepo) ListOverdueObligations(_ context.Context, now time.Time) ([]models.PaymentObligation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.PaymentObligation
	for _, o := range r.obligations {
		if o.Status == models.PaymentPending && o.PaymentDeadline.Before(now) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentDeadline.Before(out[j].PaymentDeadline) })
	return out, nil
}

// UpdateObligationStatus moves an obligation from one status to another
func (r *MemoryRepo) UpdateObligationStatus(_ context.Context, obligationID string, from, to models.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.obligations[obligationID]
	if !ok {
		return fmt.Errorf("update obligation %s: %w", obligationID, biddingerrors.ErrObligationNotFound)
	}
	if o.Status != from {
		return fmt.Errorf("update obligation %s from %s: %w - current status %s", obligationID, from, biddingerrors.ErrStateConflict, o.Status)
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	r.obligations[obligationID] = o
	return nil
}

// RecordPenalty appends a penalty; a payment can only be penalized once
func (r *MemoryRepo) RecordPenalty(_ context.Context, penalty models.Penalty) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.penalized[penalty.PaymentID]; dup {
		return fmt.Errorf("record penalty for payment %s: %w - already penalized", penalty.PaymentID, biddingerrors.ErrStateConflict)
	}
	r.penalized[penalty.PaymentID] = struct{}{}
	r.penalties[penalty.UserID] = append(r.penalties[penalty.UserID], penalty)
	return nil
}

// GetPenaltiesByUser returns a user's penalty ledger
func (r *MemoryRepo) GetPenaltiesByUser(_ context.Context, userID string) ([]models.Penalty, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]models.Penalty(nil), r.penalties[userID]...), nil
}

// AddAuction adds an auction to the repository without validation. This method is intended for tests and seeding.
func (r *MemoryRepo) AddAuction(auction models.Auction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if auction.Cycle == 0 {
		auction.Cycle = 1
	}
	r.auctions[auction.AuctionID] = auction
}
