package analytics_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront/internal/analytics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []analytics.Event
	err    error
	block  chan struct{}
}

func (s *recordingSink) Send(_ context.Context, e analytics.Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return s.err
}

func (s *recordingSink) recorded() []analytics.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]analytics.Event(nil), s.events...)
}

func TestDispatcher_DeliversAndStamps(t *testing.T) {
	sink := &recordingSink{}
	d := analytics.NewDispatcher(sink, 8, time.Second)

	d.Track(context.Background(), analytics.Event{Name: analytics.EventAddToCart, ContentIDs: []string{"1"}})
	require.NoError(t, d.Close())

	events := sink.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, analytics.EventAddToCart, events[0].Name)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].Time.IsZero())
}

func TestDispatcher_SinkErrorsAreSwallowed(t *testing.T) {
	sink := &recordingSink{err: errors.New("offline")}
	d := analytics.NewDispatcher(sink, 8, time.Second)

	d.Track(context.Background(), analytics.Event{Name: analytics.EventSearch})
	d.Track(context.Background(), analytics.Event{Name: analytics.EventPurchase})
	require.NoError(t, d.Close())

	assert.Len(t, sink.recorded(), 2)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := analytics.NewDispatcher(sink, 1, time.Second)

	for range 10 {
		d.Track(context.Background(), analytics.Event{Name: analytics.EventViewContent})
	}
	close(sink.block)
	require.NoError(t, d.Close())

	got := len(sink.recorded())
	assert.GreaterOrEqual(t, got, 1)
	assert.LessOrEqual(t, got, 2)
}

func TestDispatcher_TrackAfterCloseIsIgnored(t *testing.T) {
	sink := &recordingSink{}
	d := analytics.NewDispatcher(sink, 4, time.Second)
	require.NoError(t, d.Close())

	d.Track(context.Background(), analytics.Event{Name: analytics.EventContact})
	assert.Empty(t, sink.recorded())
	assert.NoError(t, d.Close())
}
