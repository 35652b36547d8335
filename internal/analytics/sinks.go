package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// PixelSink posts events to a Conversions-API style endpoint:
// POST {endpoint}/{pixelID}/events?access_token=...
type PixelSink struct {
	endpoint    string
	pixelID     string
	accessToken string
	timeout     time.Duration
}

// NewPixelSink creates a PixelSink.
func NewPixelSink(endpoint, pixelID, accessToken string, timeout time.Duration) *PixelSink {
	return &PixelSink{
		endpoint:    endpoint,
		pixelID:     pixelID,
		accessToken: accessToken,
		timeout:     timeout,
	}
}

type pixelEvent struct {
	EventName    string         `json:"event_name"`
	EventTime    int64          `json:"event_time"`
	EventID      string         `json:"event_id"`
	ActionSource string         `json:"action_source"`
	CustomData   map[string]any `json:"custom_data,omitempty"`
}

type pixelPayload struct {
	Data []pixelEvent `json:"data"`
}

// Send delivers one event. The context deadline, if any, caps the agent timeout.
func (s *PixelSink) Send(ctx context.Context, e Event) error {
	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout || timeout <= 0 {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return context.DeadlineExceeded
	}

	target := fmt.Sprintf("%s/%s/events", s.endpoint, s.pixelID)
	if s.accessToken != "" {
		target += "?access_token=" + url.QueryEscape(s.accessToken)
	}
	agent := fiber.Post(target)
	agent.JSON(pixelPayload{Data: []pixelEvent{toPixelEvent(e)}}).Timeout(timeout)
	if err := agent.Parse(); err != nil {
		return fmt.Errorf("failed to prepare pixel request: %w", err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("pixel request failed: %w", errors.Join(errs...))
	}
	if code >= fiber.StatusBadRequest {
		return fmt.Errorf("pixel endpoint returned %d: %s", code, string(body))
	}
	return nil
}

func toPixelEvent(e Event) pixelEvent {
	custom := map[string]any{}
	if e.ContentName != "" {
		custom["content_name"] = e.ContentName
	}
	if len(e.ContentIDs) > 0 {
		custom["content_ids"] = e.ContentIDs
	}
	if e.ContentType != "" {
		custom["content_type"] = e.ContentType
	}
	if e.Currency != "" {
		custom["value"] = e.Value
		custom["currency"] = e.Currency
	}
	if e.NumItems > 0 {
		custom["num_items"] = strconv.Itoa(e.NumItems)
	}
	if e.SearchString != "" {
		custom["search_string"] = e.SearchString
	}
	return pixelEvent{
		EventName:    string(e.Name),
		EventTime:    e.Time.Unix(),
		EventID:      e.ID,
		ActionSource: "website",
		CustomData:   custom,
	}
}

// Publisher is the part of the message-queue client QueueSink needs.
type Publisher interface {
	Publish(queue string, body []byte) error
}

// QueueSink publishes events as JSON onto a message queue.
type QueueSink struct {
	publisher Publisher
	queue     string
}

// NewQueueSink creates a QueueSink publishing to queue.
func NewQueueSink(publisher Publisher, queue string) *QueueSink {
	return &QueueSink{publisher: publisher, queue: queue}
}

func (s *QueueSink) Send(_ context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return s.publisher.Publish(s.queue, body)
}

// LogSink writes events to the standard logger.
type LogSink struct{}

func (LogSink) Send(_ context.Context, e Event) error {
	log.Printf("[Pixel] Tracked %s ids=%v value=%.2f %s items=%d search=%q",
		e.Name, e.ContentIDs, e.Value, e.Currency, e.NumItems, e.SearchString)
	return nil
}

// MultiSink fans an event out to several sinks. Every sink is tried;
// the errors are joined.
type MultiSink []Sink

func (m MultiSink) Send(ctx context.Context, e Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Send(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
