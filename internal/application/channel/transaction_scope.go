package channel

import (
	"context"

	"github.com/commerce/backend/internal/domain/catalog"
	"github.com/commerce/backend/internal/domain/channel"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/domain/store"
)

// TransactionScope provides transactional access to the repositories
// used by the sales channel service. When a function is executed within
// a transaction scope, all repository operations are part of the same
// database transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within
// a transaction. Events() persists to the outbox table, so event
// durability is coupled to the surrounding transaction.
type TransactionalRepositories interface {
	Channels() channel.SalesChannelRepository
	Stores() store.StoreRepository
	Products() catalog.ProductReader
	Events() shared.OutboxEventStore
}

// NoOpTransactionScope runs the unit of work without a real
// transaction. Useful for tests.
type NoOpTransactionScope struct {
	ChannelRepo channel.SalesChannelRepository
	StoreRepo   store.StoreRepository
	ProductRepo catalog.ProductReader
	EventStore  shared.OutboxEventStore
}

// Execute runs the function against the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Channels returns the sales channel repository
func (s *NoOpTransactionScope) Channels() channel.SalesChannelRepository {
	return s.ChannelRepo
}

// Stores returns the store repository
func (s *NoOpTransactionScope) Stores() store.StoreRepository {
	return s.StoreRepo
}

// Products returns the product reader
func (s *NoOpTransactionScope) Products() catalog.ProductReader {
	return s.ProductRepo
}

// Events returns the outbox event store
func (s *NoOpTransactionScope) Events() shared.OutboxEventStore {
	return s.EventStore
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
