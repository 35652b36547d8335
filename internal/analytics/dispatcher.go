package analytics

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Dispatcher is a Tracker that queues events and delivers them to a Sink
// from a background goroutine. A full queue drops the event.
type Dispatcher struct {
	sink    Sink
	timeout time.Duration
	events  chan Event

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher starts a dispatcher with room for buffer pending events.
// Each delivery is bounded by timeout.
func NewDispatcher(sink Sink, buffer int, timeout time.Duration) *Dispatcher {
	if buffer <= 0 {
		buffer = 1
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	d := &Dispatcher{
		sink:    sink,
		timeout: timeout,
		events:  make(chan Event, buffer),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Track enqueues e, stamping an ID and time if missing. It never blocks.
func (d *Dispatcher) Track(_ context.Context, e Event) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	select {
	case d.events <- e:
	default:
		log.Printf("Analytics queue full, dropping %s event", e.Name)
	}
}

// Close stops accepting events and waits for queued ones to be delivered.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.events)
	}
	d.mu.Unlock()
	d.wg.Wait()
	return nil
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for e := range d.events {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := d.sink.Send(ctx, e); err != nil {
			log.Printf("Analytics delivery of %s failed: %v", e.Name, err)
		}
		cancel()
	}
}
