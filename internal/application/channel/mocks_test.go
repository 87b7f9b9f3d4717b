package channel

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/commerce/backend/internal/domain/catalog"
	"github.com/commerce/backend/internal/domain/channel"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/domain/store"
)

type MockSalesChannelRepository struct {
	mock.Mock
}

func (m *MockSalesChannelRepository) FindByID(ctx context.Context, id uuid.UUID) (*channel.SalesChannel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channel.SalesChannel), args.Error(1)
}

func (m *MockSalesChannelRepository) Save(ctx context.Context, sc *channel.SalesChannel) error {
	args := m.Called(ctx, sc)
	return args.Error(0)
}

func (m *MockSalesChannelRepository) SoftRemove(ctx context.Context, sc *channel.SalesChannel) error {
	args := m.Called(ctx, sc)
	return args.Error(0)
}

func (m *MockSalesChannelRepository) AddProducts(ctx context.Context, channelID uuid.UUID, productIDs []uuid.UUID) error {
	args := m.Called(ctx, channelID, productIDs)
	return args.Error(0)
}

type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Get(ctx context.Context) (*store.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) Save(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockProductReader struct {
	mock.Mock
}

func (m *MockProductReader) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

type MockEventStore struct {
	mock.Mock

	saved []shared.DomainEvent
}

func (m *MockEventStore) SaveEvents(ctx context.Context, events ...shared.DomainEvent) error {
	m.saved = append(m.saved, events...)
	args := m.Called(ctx, events)
	return args.Error(0)
}

// SavedEventTypes returns the types of all events saved so far
func (m *MockEventStore) SavedEventTypes() []string {
	types := make([]string, len(m.saved))
	for i, e := range m.saved {
		types[i] = e.EventType()
	}
	return types
}
