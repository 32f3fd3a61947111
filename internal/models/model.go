package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuctionStatus is the settlement state of an auction
type AuctionStatus string

const (
	AuctionActive             AuctionStatus = "active"
	AuctionEndedSuccess       AuctionStatus = "ended_success"
	AuctionEndedReserveNotMet AuctionStatus = "ended_reserve_not_met"
	AuctionEndedNegotiating   AuctionStatus = "ended_negotiating"
	AuctionEndedNoBids        AuctionStatus = "ended_no_bids"
	AuctionEndedUnsold        AuctionStatus = "ended_unsold"
	AuctionCancelled          AuctionStatus = "cancelled"
)

// PaymentStatus is the state of a payment obligation
type PaymentStatus string

const (
	PaymentPending            PaymentStatus = "pending"
	PaymentCompleted          PaymentStatus = "completed"
	PaymentCancelledNoPayment PaymentStatus = "cancelled_no_payment"
)

// Open reports whether the obligation still blocks a new one for the same auction
func (s PaymentStatus) Open() bool {
	return s == PaymentPending || s == PaymentCompleted
}

// Auction is a vehicle listing in auction mode
type Auction struct {
	AuctionID        string        `gorm:"column:id;primaryKey;size:36" json:"auction_id"`
	SellerID         string        `gorm:"size:64;not null;index" json:"seller_id"`
	Title            string        `gorm:"size:255" json:"title"`
	StartingPrice    int64         `gorm:"not null;default:0" json:"starting_price"`
	ReservePrice     *int64        `json:"reserve_price,omitempty"`
	BuyNowPrice      *int64        `json:"buy_now_price,omitempty"`
	CurrentBid       int64         `gorm:"not null;default:0" json:"current_bid"`
	BidCount         int           `gorm:"not null;default:0" json:"bid_count"`
	EndTime          time.Time     `gorm:"not null;index" json:"end_time"`
	Status           AuctionStatus `gorm:"size:32;not null;index" json:"status"`
	DecisionDeadline *time.Time    `json:"decision_deadline,omitempty"`
	Cycle            int           `gorm:"not null;default:1" json:"cycle"`
	ExtensionCount   int           `gorm:"not null;default:0" json:"extension_count"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Bid represents a user's bid on an auction. Bids are never edited.
type Bid struct {
	BidID     string    `gorm:"column:id;primaryKey;size:36" json:"bid_id"`
	AuctionID string    `gorm:"size:36;not null;index:idx_bids_auction_cycle" json:"auction_id"`
	Cycle     int       `gorm:"not null;index:idx_bids_auction_cycle" json:"cycle"`
	BidderID  string    `gorm:"size:64;not null;index" json:"bidder_id"`
	Amount    int64     `gorm:"not null" json:"amount"`
	BuyNow    bool      `gorm:"not null;default:false" json:"buy_now"`
	PlacedAt  time.Time `gorm:"not null" json:"placed_at"`
}

// PaymentObligation is what a winning (or cascaded) buyer owes for an auction
type PaymentObligation struct {
	ObligationID    string          `gorm:"column:id;primaryKey;size:36" json:"obligation_id"`
	AuctionID       string          `gorm:"size:36;not null;index" json:"auction_id"`
	Cycle           int             `gorm:"not null" json:"cycle"`
	UserID          string          `gorm:"size:64;not null;index" json:"user_id"`
	Amount          int64           `gorm:"not null" json:"amount"`
	Commission      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"commission"`
	Status          PaymentStatus   `gorm:"size:32;not null;index" json:"status"`
	PaymentDeadline time.Time       `gorm:"not null;index" json:"payment_deadline"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Penalty is an append-only reputation ledger entry
type Penalty struct {
	PenaltyID      string    `gorm:"column:id;primaryKey;size:36" json:"penalty_id"`
	UserID         string    `gorm:"size:64;not null;index" json:"user_id"`
	PaymentID      string    `gorm:"size:36;not null;uniqueIndex" json:"payment_id"`
	PointsDeducted int       `gorm:"not null" json:"points_deducted"`
	Reason         string    `gorm:"size:255" json:"reason"`
	CreatedAt      time.Time `json:"created_at"`
}

// AuctionGuard is the expected state an auction must be in for a transition to apply
type AuctionGuard struct {
	Status   AuctionStatus
	SellerID string     // empty: any seller
	EndedBy  *time.Time // when set, end_time must be <= EndedBy
	Cycle    int        // 0: any cycle
	BidCount *int       // when set, bid_count must equal it
	HighBid  *int64     // when set, current_bid must equal it
}

// AuctionUpdate is the new state written by a guarded transition.
// A nil DecisionDeadline clears it.
type AuctionUpdate struct {
	Status           AuctionStatus
	EndTime          *time.Time
	DecisionDeadline *time.Time
	NextCycle        bool
}

// BidReceipt is returned when a bid is accepted by the store
type BidReceipt struct {
	Previous *Bid
	EndTime  time.Time
	Extended bool
}
