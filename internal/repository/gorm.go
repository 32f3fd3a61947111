package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-settlement/internal/biddingerrors"
	"auction-settlement/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// bidOrder is the SQL rendering of ranking.Precedes
const bidOrder = "amount DESC, placed_at ASC, id ASC"

// GormRepo implements AuctionDB on a SQL database through gorm.
// Guarded writes are single conditional UPDATE statements; bid placement
// locks the auction row for the duration of its transaction.
type GormRepo struct {
	db *gorm.DB
}

// NewGormRepo creates a repository on an open gorm connection
func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

// CreateAuction stores a new auction
func (r *GormRepo) CreateAuction(ctx context.Context, auction models.Auction) error {
	if auction.AuctionID == "" {
		return fmt.Errorf("create auction: %w - empty auction id", biddingerrors.ErrInvalidInput)
	}
	if auction.Cycle == 0 {
		auction.Cycle = 1
	}
	err := r.db.WithContext(ctx).Create(&auction).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("create auction %s: %w - already exists", auction.AuctionID, biddingerrors.ErrStateConflict)
	}
	if err != nil {
		return fmt.Errorf("create auction %s: %w", auction.AuctionID, err)
	}
	return nil
}

// GetAuction returns an auction by id
func (r *GormRepo) GetAuction(ctx context.Context, auctionID string) (models.Auction, error) {
	var a models.Auction
	err := r.db.WithContext(ctx).Where("id = ?", auctionID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return models.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, err)
	}
	return a, nil
}

// ListAuctionsDue returns active auctions that reached their end time
func (r *GormRepo) ListAuctionsDue(ctx context.Context, now time.Time) ([]models.Auction, error) {
	var due []models.Auction
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_time <= ?", models.AuctionActive, now).
		Order("end_time ASC").
		Find(&due).Error
	if err != nil {
		return nil, fmt.Errorf("list due auctions: %w", err)
	}
	return due, nil
}

// ListAuctionsByStatus returns the auctions in status, least recently updated first
func (r *GormRepo) ListAuctionsByStatus(ctx context.Context, status models.AuctionStatus) ([]models.Auction, error) {
	var auctions []models.Auction
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("updated_at ASC").
		Find(&auctions).Error
	if err != nil {
		return nil, fmt.Errorf("list %s auctions: %w", status, err)
	}
	return auctions, nil
}

// GetAuctionsByBidder returns all auctions a user has bid on
func (r *GormRepo) GetAuctionsByBidder(ctx context.Context, bidderID string) ([]models.Auction, error) {
	var auctions []models.Auction
	sub := r.db.Model(&models.Bid{}).Select("auction_id").Where("bidder_id = ?", bidderID)
	err := r.db.WithContext(ctx).
		Where("id IN (?)", sub).
		Order("end_time ASC").
		Find(&auctions).Error
	if err != nil {
		return nil, fmt.Errorf("get auctions for user %s: %w", bidderID, err)
	}
	if len(auctions) == 0 {
		return nil, fmt.Errorf("get auctions for user %s: %w", bidderID, biddingerrors.ErrUserNoBids)
	}
	return auctions, nil
}

// TransitionAuction applies update when the auction matches guard
func (r *GormRepo) TransitionAuction(ctx context.Context, auctionID string, guard models.AuctionGuard, update models.AuctionUpdate) error {
	q := r.db.WithContext(ctx).Model(&models.Auction{}).
		Where("id = ? AND status = ?", auctionID, guard.Status)
	if guard.SellerID != "" {
		q = q.Where("seller_id = ?", guard.SellerID)
	}
	if guard.EndedBy != nil {
		q = q.Where("end_time <= ?", *guard.EndedBy)
	}
	if guard.Cycle != 0 {
		q = q.Where("cycle = ?", guard.Cycle)
	}
	if guard.HighBid != nil {
		q = q.Where("current_bid = ?", *guard.HighBid)
	}
	if guard.BidCount != nil {
		q = q.Where("bid_count = ?", *guard.BidCount)
	}

	updates := map[string]any{
		"status":            update.Status,
		"decision_deadline": update.DecisionDeadline,
		"updated_at":        time.Now().UTC(),
	}
	if update.EndTime != nil {
		updates["end_time"] = *update.EndTime
	}
	if update.NextCycle {
		updates["cycle"] = gorm.Expr("cycle + 1")
		updates["current_bid"] = 0
		updates["bid_count"] = 0
		updates["extension_count"] = 0
	}

	res := q.Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("transition auction %s: %w", auctionID, res.Error)
	}
	if res.RowsAffected == 0 {
		current, err := r.GetAuction(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("transition auction %s: %w", auctionID, err)
		}
		return fmt.Errorf("transition auction %s from %s: %w - current status %s", auctionID, guard.Status, biddingerrors.ErrStateConflict, current.Status)
	}
	return nil
}

// RecordBid appends a bid and raises the auction's high bid and end time
func (r *GormRepo) RecordBid(ctx context.Context, bid models.Bid, extendTo *time.Time, maxExtensions int) (models.BidReceipt, error) {
	var receipt models.BidReceipt

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Auction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", bid.AuctionID).First(&a).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return biddingerrors.ErrAuctionNotFound
		}
		if err != nil {
			return err
		}
		if a.Status != models.AuctionActive || a.Cycle != bid.Cycle || !bid.PlacedAt.Before(a.EndTime) {
			return biddingerrors.ErrAuctionClosed
		}
		if bid.Amount <= a.CurrentBid {
			return fmt.Errorf("%w - current highest bid is %d", biddingerrors.ErrBidTooLow, a.CurrentBid)
		}

		var prev models.Bid
		err = tx.Where("auction_id = ? AND cycle = ?", a.AuctionID, a.Cycle).Order(bidOrder).First(&prev).Error
		switch {
		case err == nil:
			receipt.Previous = &prev
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := tx.Create(&bid).Error; err != nil {
			return err
		}

		updates := map[string]any{
			"current_bid": bid.Amount,
			"bid_count":   gorm.Expr("bid_count + 1"),
			"updated_at":  time.Now().UTC(),
		}
		receipt.EndTime = a.EndTime
		if extendTo != nil && extendTo.After(a.EndTime) && (maxExtensions == 0 || a.ExtensionCount < maxExtensions) {
			updates["end_time"] = *extendTo
			updates["extension_count"] = gorm.Expr("extension_count + 1")
			receipt.EndTime = *extendTo
			receipt.Extended = true
		}

		// current_bid guard keeps the write conditional on drivers without row locks
		res := tx.Model(&models.Auction{}).
			Where("id = ? AND current_bid < ?", a.AuctionID, bid.Amount).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return biddingerrors.ErrBidTooLow
		}
		return nil
	})
	if err != nil {
		return models.BidReceipt{}, fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, err)
	}
	return receipt, nil
}

// GetBidsByAuction returns the bids of a cycle in precedence order
func (r *GormRepo) GetBidsByAuction(ctx context.Context, auctionID string, cycle int) ([]models.Bid, error) {
	if _, err := r.GetAuction(ctx, auctionID); err != nil {
		return nil, fmt.Errorf("get bids: %w", err)
	}

	var bids []models.Bid
	err := r.db.WithContext(ctx).
		Where("auction_id = ? AND cycle = ?", auctionID, cycle).
		Order(bidOrder).
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, err)
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, biddingerrors.ErrNoBids)
	}
	return bids, nil
}

// GetWinningBid returns the highest bid of a cycle
func (r *GormRepo) GetWinningBid(ctx context.Context, auctionID string, cycle int) (models.Bid, error) {
	if _, err := r.GetAuction(ctx, auctionID); err != nil {
		return models.Bid{}, fmt.Errorf("get winning bid: %w", err)
	}

	var winning models.Bid
	err := r.db.WithContext(ctx).
		Where("auction_id = ? AND cycle = ?", auctionID, cycle).
		Order(bidOrder).
		First(&winning).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Bid{}, fmt.Errorf("get winning bid for auction %s: %w", auctionID, biddingerrors.ErrNoBids)
	}
	if err != nil {
		return models.Bid{}, fmt.Errorf("get winning bid for auction %s: %w", auctionID, err)
	}
	return winning, nil
}

// CreateObligation stores an obligation unless the auction already has an open one.
// The partial unique index created by database.AutoMigrate backs the check.
func (r *GormRepo) CreateObligation(ctx context.Context, obligation models.PaymentObligation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Auction{}).Where("id = ?", obligation.AuctionID).Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return biddingerrors.ErrAuctionNotFound
		}

		err = tx.Model(&models.PaymentObligation{}).
			Where("auction_id = ? AND status IN ?", obligation.AuctionID,
				[]models.PaymentStatus{models.PaymentPending, models.PaymentCompleted}).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w - auction already has an open obligation", biddingerrors.ErrStateConflict)
		}

		err = tx.Create(&obligation).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w - auction already has an open obligation", biddingerrors.ErrStateConflict)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("create obligation for auction %s: %w", obligation.AuctionID, err)
	}
	return nil
}

// GetObligation returns an obligation by id
func (r *GormRepo) GetObligation(ctx context.Context, obligationID string) (models.PaymentObligation, error) {
	var o models.PaymentObligation
	err := r.db.WithContext(ctx).Where("id = ?", obligationID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PaymentObligation{}, fmt.Errorf("get obligation %s: %w", obligationID, biddingerrors.ErrObligationNotFound)
	}
	if err != nil {
		return models.PaymentObligation{}, fmt.Errorf("get obligation %s: %w", obligationID, err)
	}
	return o, nil
}

// GetObligationsByAuction returns an auction's obligations in creation order
func (r *GormRepo) GetObligationsByAuction(ctx context.Context, auctionID string) ([]models.PaymentObligation, error) {
	var out []models.PaymentObligation
	err := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("get obligations for auction %s: %w", auctionID, err)
	}
	return out, nil
}

// ListOverdueObligations returns pending obligations past their deadline
func (r *GormRepo) ListOverdueObligations(ctx context.Context, now time.Time) ([]models.PaymentObligation, error) {
	var out []models.PaymentObligation
	err := r.db.WithContext(ctx).
		Where("status = ? AND payment_deadline < ?", models.PaymentPending, now).
		Order("payment_deadline ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list overdue obligations: %w", err)
	}
	return out, nil
}

// UpdateObligationStatus moves an obligation from one status to another
func (r *GormRepo) UpdateObligationStatus(ctx context.Context, obligationID string, from, to models.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&models.PaymentObligation{}).
		Where("id = ? AND status = ?", obligationID, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return fmt.Errorf("update obligation %s: %w", obligationID, res.Error)
	}
	if res.RowsAffected == 0 {
		current, err := r.GetObligation(ctx, obligationID)
		if err != nil {
			return fmt.Errorf("update obligation: %w", err)
		}
		return fmt.Errorf("update obligation %s from %s: %w - current status %s", obligationID, from, biddingerrors.ErrStateConflict, current.Status)
	}
	return nil
}

// RecordPenalty appends a penalty; a payment can only be penalized once
func (r *GormRepo) RecordPenalty(ctx context.Context, penalty models.Penalty) error {
	err := r.db.WithContext(ctx).Create(&penalty).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("record penalty for payment %s: %w - already penalized", penalty.PaymentID, biddingerrors.ErrStateConflict)
	}
	if err != nil {
		return fmt.Errorf("record penalty for payment %s: %w", penalty.PaymentID, err)
	}
	return nil
}

// GetPenaltiesByUser returns a user's penalty ledger
func (r *GormRepo) GetPenaltiesByUser(ctx context.Context, userID string) ([]models.Penalty, error) {
	var out []models.Penalty
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("get penalties for user %s: %w", userID, err)
	}
	return out, nil
}
