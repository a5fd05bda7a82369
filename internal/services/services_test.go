package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/smarttransit/metro-ticketing/internal/config"
	"github.com/smarttransit/metro-ticketing/internal/events"
	"github.com/smarttransit/metro-ticketing/internal/metro"
	"github.com/smarttransit/metro-ticketing/internal/models"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// permNetwork builds the shipped Perm layout
func permNetwork(t *testing.T, opts ...metro.Option) *metro.Network {
	t.Helper()
	layout, err := config.LoadLayout("../../configs/perm.yml")
	require.NoError(t, err)
	network, err := BuildNetwork(layout, opts...)
	require.NoError(t, err)
	return network
}

type fakeJournal struct {
	mu      sync.Mutex
	sales   []models.Sale
	failing bool
}

func (f *fakeJournal) Create(_ context.Context, sale *models.Sale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return fmt.Errorf("journal unavailable")
	}
	f.sales = append(f.sales, *sale)
	return nil
}

func (f *fakeJournal) ListAll(context.Context) ([]models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, fmt.Errorf("journal unavailable")
	}
	return append([]models.Sale(nil), f.sales...), nil
}

type fakePassStore struct {
	mu     sync.Mutex
	passes map[string]models.PassRecord
}

func newFakePassStore() *fakePassStore {
	return &fakePassStore{passes: make(map[string]models.PassRecord)}
}

func (f *fakePassStore) Upsert(_ context.Context, pass *models.PassRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.passes[pass.Serial] = *pass
	return nil
}

func (f *fakePassStore) ListAll(context.Context) ([]models.PassRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.PassRecord, 0, len(f.passes))
	for _, p := range f.passes {
		out = append(out, p)
	}
	return out, nil
}

type fakePublisher struct {
	mu      sync.Mutex
	events  []events.SaleEvent
	failing bool
}

func (f *fakePublisher) PublishSale(_ context.Context, event events.SaleEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return fmt.Errorf("broker unavailable")
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeQuoteCache struct {
	quotes map[string]*models.FareQuote
	sets   int
}

func newFakeQuoteCache() *fakeQuoteCache {
	return &fakeQuoteCache{quotes: make(map[string]*models.FareQuote)}
}

func (f *fakeQuoteCache) Get(_ context.Context, from, to string) (*models.FareQuote, error) {
	return f.quotes[from+"|"+to], nil
}

func (f *fakeQuoteCache) Set(_ context.Context, quote *models.FareQuote) error {
	f.sets++
	f.quotes[quote.From+"|"+quote.To] = quote
	return nil
}
