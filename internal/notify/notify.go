package notify

//go:generate mockgen -source=notify.go -destination=mock_notify.go -package=notify

import (
	"context"

	"auction-settlement/utils"
)

// EventType names a notification sent to a marketplace user
type EventType string

const (
	EventOutbid            EventType = "outbid"
	EventAuctionExtended   EventType = "auction_extended"
	EventAuctionWon        EventType = "auction_won"
	EventAuctionSold       EventType = "auction_sold"
	EventAuctionLost       EventType = "auction_lost"
	EventReserveNotMet     EventType = "reserve_not_met"
	EventAuctionRelisted   EventType = "auction_relisted"
	EventSecondChanceOffer EventType = "second_chance_offer"
	EventPaymentDefaulted  EventType = "payment_defaulted"
	EventAuctionUnsold     EventType = "auction_unsold"
	EventPaymentReceived   EventType = "payment_received"
)

// Dispatcher delivers notifications (email in production)
type Dispatcher interface {
	Notify(ctx context.Context, event EventType, recipientID string, payload map[string]any) error
}

// LogDispatcher writes notifications to the structured log instead of sending them
type LogDispatcher struct{}

// NewLogDispatcher creates a dispatcher that only logs
func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

// Notify logs the notification
func (LogDispatcher) Notify(_ context.Context, event EventType, recipientID string, payload map[string]any) error {
	fields := map[string]any{"event": string(event), "recipient_id": recipientID}
	for k, v := range payload {
		fields[k] = v
	}
	utils.Info("notification dispatched", fields)
	return nil
}

// Send dispatches a notification and swallows any failure.
// State transitions never depend on delivery.
func Send(ctx context.Context, d Dispatcher, event EventType, recipientID string, payload map[string]any) {
	if d == nil || recipientID == "" {
		return
	}
	if err := d.Notify(ctx, event, recipientID, payload); err != nil {
		utils.Warn("notification failed", map[string]any{
			"event":        string(event),
			"recipient_id": recipientID,
			"error":        err.Error(),
		})
	}
}
