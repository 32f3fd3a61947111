// Package ranking holds the one bid-precedence rule used everywhere bids are
// compared: higher amount first, then earlier placement, then bid id.
package ranking

import (
	"sort"

	"auction-settlement/internal/models"
)

// Precedes reports whether bid a ranks ahead of bid b
func Precedes(a, b models.Bid) bool {
	if a.Amount != b.Amount {
		return a.Amount > b.Amount
	}
	if !a.PlacedAt.Equal(b.PlacedAt) {
		return a.PlacedAt.Before(b.PlacedAt)
	}
	return a.BidID < b.BidID
}

// Sort orders bids in place by precedence
func Sort(bids []models.Bid) {
	sort.SliceStable(bids, func(i, j int) bool {
		return Precedes(bids[i], bids[j])
	})
}

// Highest returns the top bid, or false when there are none
func Highest(bids []models.Bid) (models.Bid, bool) {
	if len(bids) == 0 {
		return models.Bid{}, false
	}
	best := bids[0]
	for _, b := range bids[1:] {
		if Precedes(b, best) {
			best = b
		}
	}
	return best, true
}

// Bidders returns each bidder's best bid, ordered by precedence.
// A bidder appears once even if they bid several times.
func Bidders(bids []models.Bid) []models.Bid {
	best := make(map[string]models.Bid, len(bids))
	for _, b := range bids {
		if cur, ok := best[b.BidderID]; !ok || Precedes(b, cur) {
			best[b.BidderID] = b
		}
	}

	out := make([]models.Bid, 0, len(best))
	for _, b := range best {
		out = append(out, b)
	}
	Sort(out)
	return out
}

// NextAfter walks the bidder ranking strictly below bidderID and returns the
// first bidder's best bid for which skip returns false. If bidderID is not
// ranked, the walk starts from the top.
func NextAfter(bids []models.Bid, bidderID string, skip func(bidderID string) bool) (models.Bid, bool) {
	ranked := Bidders(bids)

	start := 0
	for i, b := range ranked {
		if b.BidderID == bidderID {
			start = i + 1
			break
		}
	}

	for _, b := range ranked[start:] {
		if b.BidderID == bidderID {
			continue
		}
		if skip != nil && skip(b.BidderID) {
			continue
		}
		return b, true
	}
	return models.Bid{}, false
}
