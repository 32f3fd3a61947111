package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"auction-settlement/internal/biddingerrors"
	model "auction-settlement/internal/models"

	"github.com/stretchr/testify/require"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{biddingerrors.ErrAuctionNotFound, http.StatusNotFound},
		{biddingerrors.ErrObligationNotFound, http.StatusNotFound},
		{biddingerrors.ErrInvalidBid, http.StatusBadRequest},
		{biddingerrors.ErrInvalidInput, http.StatusBadRequest},
		{biddingerrors.ErrSelfBid, http.StatusForbidden},
		{biddingerrors.ErrUnauthorized, http.StatusForbidden},
		{biddingerrors.ErrBidTooLow, http.StatusConflict},
		{biddingerrors.ErrAuctionClosed, http.StatusConflict},
		{biddingerrors.ErrStateConflict, http.StatusConflict},
		{biddingerrors.ErrNoEligibleBidder, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			status, _ := MapErrorToHTTP(tc.err)
			require.Equal(t, tc.wantStatus, status)

			wrapped, _ := MapErrorToHTTP(fmt.Errorf("settlement: outer: %w", tc.err))
			require.Equal(t, tc.wantStatus, wrapped, "wrapped errors map the same way")
		})
	}
}

func TestNewAuctionResponse(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	reserve := int64(10000)
	deadline := now.Add(48 * time.Hour)
	a := model.Auction{
		AuctionID:        "a1",
		SellerID:         "seller",
		ReservePrice:     &reserve,
		CurrentBid:       10000,
		BidCount:         2,
		EndTime:          now.Add(-time.Minute),
		Status:           model.AuctionEndedSuccess,
		DecisionDeadline: &deadline,
	}

	bidderView := NewAuctionResponse(a, "bidder", now)
	require.Nil(t, bidderView.ReservePrice)
	require.True(t, bidderView.HasReserve)
	require.True(t, bidderView.ReserveMet)
	require.False(t, bidderView.EndingSoon)
	require.Equal(t, "ended", bidderView.TimeLeftText)
	require.NotNil(t, bidderView.DecisionDeadline)
	require.Equal(t, "2025-03-03T12:00:00Z", *bidderView.DecisionDeadline)

	anonymous := NewAuctionResponse(a, "", now)
	require.Nil(t, anonymous.ReservePrice)

	sellerView := NewAuctionResponse(a, "seller", now)
	require.NotNil(t, sellerView.ReservePrice)
	require.Equal(t, reserve, *sellerView.ReservePrice)

	a.ReservePrice = nil
	a.BidCount = 0
	noReserve := NewAuctionResponse(a, "bidder", now)
	require.False(t, noReserve.HasReserve)
	require.True(t, noReserve.ReserveMet)
}
