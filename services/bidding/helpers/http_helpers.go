package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"auction-settlement/internal/biddingerrors"
	"auction-settlement/utils"

	"github.com/gin-gonic/gin"
)

// ActorKey is the gin context key holding the acting user's id
const ActorKey = "actor_id"

// ActorHeader carries the acting user's id; authentication happens upstream
const ActorHeader = "X-User-ID"

// Actor returns the acting user's id, or "" when the request carries none
func Actor(c *gin.Context) string {
	if v, ok := c.Get(ActorKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return c.GetHeader(ActorHeader)
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// HandleServiceError maps err to a status, writes the error envelope and logs it
func HandleServiceError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, biddingerrors.ErrObligationNotFound):
		return http.StatusNotFound, "payment obligation not found"
	case errors.Is(err, biddingerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, biddingerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, biddingerrors.ErrSelfBid):
		return http.StatusForbidden, "seller cannot bid on own auction"
	case errors.Is(err, biddingerrors.ErrUnauthorized):
		return http.StatusForbidden, "not permitted"
	case errors.Is(err, biddingerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, biddingerrors.ErrAuctionClosed):
		return http.StatusConflict, "auction is closed"
	case errors.Is(err, biddingerrors.ErrStateConflict):
		return http.StatusConflict, "auction state changed"
	case errors.Is(err, biddingerrors.ErrNoEligibleBidder):
		return http.StatusUnprocessableEntity, "no eligible bidder"
	case errors.Is(err, biddingerrors.ErrNoBids):
		return http.StatusOK, "no bids found for auction"
	case errors.Is(err, biddingerrors.ErrUserNoBids):
		return http.StatusOK, "no auctions found for user"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
