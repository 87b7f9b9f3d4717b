package persistence

import (
	"context"

	"gorm.io/gorm"

	appchannel "github.com/commerce/backend/internal/application/channel"
	"github.com/commerce/backend/internal/domain/catalog"
	"github.com/commerce/backend/internal/domain/channel"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/domain/store"
	"github.com/commerce/backend/internal/infrastructure/event"
)

// GormTransactionScope implements the application transaction scope on
// top of gorm's transaction support. Every Execute call opens a fresh
// transaction and hands the unit of work repositories bound to it.
type GormTransactionScope struct {
	db         *gorm.DB
	serializer *event.Serializer
}

// NewGormTransactionScope creates a new transaction scope
func NewGormTransactionScope(db *gorm.DB, serializer *event.Serializer) *GormTransactionScope {
	return &GormTransactionScope{db: db, serializer: serializer}
}

// Execute runs fn inside a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appchannel.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&transactionalRepositories{
			channels: NewGormSalesChannelRepository(tx),
			stores:   NewGormStoreRepository(tx),
			products: NewGormProductRepository(tx),
			events:   event.NewOutboxStore(NewGormOutboxRepository(tx), s.serializer),
		})
	})
}

type transactionalRepositories struct {
	channels channel.SalesChannelRepository
	stores   store.StoreRepository
	products catalog.ProductReader
	events   shared.OutboxEventStore
}

func (r *transactionalRepositories) Channels() channel.SalesChannelRepository {
	return r.channels
}

func (r *transactionalRepositories) Stores() store.StoreRepository {
	return r.stores
}

func (r *transactionalRepositories) Products() catalog.ProductReader {
	return r.products
}

func (r *transactionalRepositories) Events() shared.OutboxEventStore {
	return r.events
}

var _ appchannel.TransactionScope = (*GormTransactionScope)(nil)
