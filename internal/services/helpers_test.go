package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront/internal/analytics"
	"storefront/internal/llm"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/seed"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id int) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

// recordingTracker keeps every tracked event.
type recordingTracker struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (r *recordingTracker) Track(_ context.Context, e analytics.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingTracker) Events() []analytics.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]analytics.Event(nil), r.events...)
}

func (r *recordingTracker) Names() []analytics.EventName {
	var names []analytics.EventName
	for _, e := range r.Events() {
		names = append(names, e.Name)
	}
	return names
}

// fakeClock fires After immediately unless blocked. When gate is set, After
// waits for it and announces each wait on entered.
type fakeClock struct {
	now     time.Time
	block   bool
	gate    chan time.Time
	entered chan struct{}
	waited  []time.Duration
	mu      sync.Mutex
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.waited = append(c.waited, d)
	c.mu.Unlock()

	if c.entered != nil {
		c.entered <- struct{}{}
	}
	if c.gate != nil {
		return c.gate
	}
	ch := make(chan time.Time, 1)
	if !c.block {
		ch <- c.now.Add(d)
	}
	return ch
}

// mockPublisher records published messages.
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(queue string, body []byte) error {
	args := m.Called(queue, body)
	return args.Error(0)
}

// stubGenerator replies with a fixed answer or error.
type stubGenerator struct {
	reply   string
	err     error
	system  string
	history []llm.Message
}

func (g *stubGenerator) Chat(_ context.Context, system string, history []llm.Message) (string, error) {
	g.system = system
	g.history = history
	return g.reply, g.err
}

func (g *stubGenerator) Model() string { return "stub" }

func newProductRepo(t *testing.T, products ...models.Product) *repositories.MockProductRepository {
	t.Helper()
	if len(products) == 0 {
		products = seed.Products()
	}
	repo := repositories.NewMockProductRepository()
	for _, p := range products {
		p := p
		require.NoError(t, repo.Create(&p))
	}
	return repo
}
