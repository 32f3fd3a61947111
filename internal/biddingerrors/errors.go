package biddingerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound    = errors.New("auction not found")
	ErrObligationNotFound = errors.New("payment obligation not found")
	ErrNoBids             = errors.New("no bids found for auction")
	ErrUserNoBids         = errors.New("user has not placed any bids")
)

// business logic errors
var (
	ErrInvalidBid    = errors.New("invalid bid")
	ErrBidTooLow     = errors.New("bid amount too low")
	ErrAuctionClosed = errors.New("auction is not accepting bids")
	ErrSelfBid       = errors.New("seller cannot bid on own auction")
	ErrInvalidInput  = errors.New("invalid input")
)

// settlement errors
var (
	// ErrUnauthorized: the actor is not the seller or the obligated buyer.
	ErrUnauthorized = errors.New("actor not permitted for this auction")
	// ErrStateConflict: the record was not in the expected source state.
	// Sweeps treat it as already handled by a concurrent run.
	ErrStateConflict    = errors.New("state conflict")
	ErrNoEligibleBidder = errors.New("no eligible bidder left")
)
