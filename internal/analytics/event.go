// Package analytics ships storefront events to third-party tracking.
// Delivery is best effort: nothing is retried and failures never reach callers.
package analytics

import (
	"context"
	"time"
)

// EventName is one of the standard pixel events.
type EventName string

const (
	EventViewContent          EventName = "ViewContent"
	EventAddToCart            EventName = "AddToCart"
	EventPurchase             EventName = "Purchase"
	EventInitiateCheckout     EventName = "InitiateCheckout"
	EventSearch               EventName = "Search"
	EventAddToWishlist        EventName = "AddToWishlist"
	EventContact              EventName = "Contact"
	EventCompleteRegistration EventName = "CompleteRegistration"
)

// ContentTypeProduct is the content type of single-product events.
const ContentTypeProduct = "product"

// Event is a tracked user action.
type Event struct {
	Name         EventName `json:"event_name"`
	ID           string    `json:"event_id"`
	Time         time.Time `json:"event_time"`
	ContentName  string    `json:"content_name,omitempty"`
	ContentIDs   []string  `json:"content_ids,omitempty"`
	ContentType  string    `json:"content_type,omitempty"`
	Value        float64   `json:"value,omitempty"`
	Currency     string    `json:"currency,omitempty"`
	NumItems     int       `json:"num_items,omitempty"`
	SearchString string    `json:"search_string,omitempty"`
	SessionID    string    `json:"session_id,omitempty"`
}

// Tracker records events. Implementations must not block the caller on delivery.
type Tracker interface {
	Track(ctx context.Context, e Event)
}

// Sink delivers a single event synchronously.
type Sink interface {
	Send(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Track(context.Context, Event) {}
