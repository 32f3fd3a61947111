// Package settlement decides how ended auctions resolve and runs the
// second-chance cascade when a buyer does not pay.
package settlement

import (
	"auction-settlement/internal/models"
	"auction-settlement/internal/ranking"
)

// OutcomeKind classifies an ended auction
type OutcomeKind string

const (
	OutcomeNoBids        OutcomeKind = "no_bids"
	OutcomeReserveMet    OutcomeKind = "reserve_met"
	OutcomeReserveNotMet OutcomeKind = "reserve_not_met"
)

// Outcome is the settlement decision for an auction's bids
type Outcome struct {
	Kind            OutcomeKind `json:"kind"`
	HighBid         *models.Bid `json:"high_bid,omitempty"`
	Amount          int64       `json:"amount"`
	SecondBidExists bool        `json:"second_bid_exists"`
}

// Decide classifies an auction from the bids of its current cycle.
// A missing reserve is met by any bid.
func Decide(auction models.Auction, bids []models.Bid) Outcome {
	high, ok := ranking.Highest(bids)
	if !ok {
		return Outcome{Kind: OutcomeNoBids}
	}

	if auction.ReservePrice == nil || high.Amount >= *auction.ReservePrice {
		return Outcome{Kind: OutcomeReserveMet, HighBid: &high, Amount: high.Amount}
	}

	return Outcome{
		Kind:            OutcomeReserveNotMet,
		HighBid:         &high,
		Amount:          high.Amount,
		SecondBidExists: len(ranking.Bidders(bids)) >= 2,
	}
}

func (o Outcome) status() models.AuctionStatus {
	switch o.Kind {
	case OutcomeReserveMet:
		return models.AuctionEndedSuccess
	case OutcomeReserveNotMet:
		return models.AuctionEndedReserveNotMet
	default:
		return models.AuctionEndedNoBids
	}
}
