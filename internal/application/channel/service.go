package channel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/commerce/backend/internal/domain/catalog"
	"github.com/commerce/backend/internal/domain/channel"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SalesChannelService orchestrates all sales channel operations. Every
// public operation runs inside one transaction scope: if the body
// fails the transaction rolls back and the (possibly translated) error
// is returned; if it succeeds, the row writes and the outbox entries
// for the emitted events commit together.
type SalesChannelService struct {
	scope    TransactionScope
	products catalog.ProductReader
	logger   *zap.Logger
}

// NewSalesChannelService creates a new SalesChannelService. The
// product reader is used outside the transaction scope, only to
// diagnose failed association inserts.
func NewSalesChannelService(scope TransactionScope, products catalog.ProductReader, logger *zap.Logger) *SalesChannelService {
	return &SalesChannelService{
		scope:    scope,
		products: products,
		logger:   logger.Named("sales_channel_service"),
	}
}

// Retrieve returns the channel with the given id, or ErrNotFound.
// Soft-removed channels are excluded.
func (s *SalesChannelService) Retrieve(ctx context.Context, id uuid.UUID) (*SalesChannelResponse, error) {
	var resp *SalesChannelResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sc, err := repos.Channels().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp = ToSalesChannelResponse(sc)
		return nil
	})
	if err != nil {
		return nil, normalizeError(err)
	}
	return resp, nil
}

// Create persists a new channel and emits sales_channel.created within
// the same transaction.
func (s *SalesChannelService) Create(ctx context.Context, req CreateSalesChannelRequest) (*SalesChannelResponse, error) {
	var resp *SalesChannelResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sc, err := channel.NewSalesChannel(req.Name, req.Description, req.IsDisabled)
		if err != nil {
			return err
		}
		if err := repos.Channels().Save(ctx, sc); err != nil {
			return err
		}
		if err := repos.Events().SaveEvents(ctx, sc.PendingEvents()...); err != nil {
			return err
		}
		sc.ClearEvents()
		resp = ToSalesChannelResponse(sc)
		return nil
	})
	if err != nil {
		return nil, normalizeError(err)
	}
	s.logger.Info("sales channel created", zap.String("channel_id", resp.ID.String()))
	return resp, nil
}

// Update applies a partial update. Fields absent from the patch keep
// their value; present fields overwrite, including with zero values.
// Emits sales_channel.updated within the same transaction.
func (s *SalesChannelService) Update(ctx context.Context, id uuid.UUID, req UpdateSalesChannelRequest) (*SalesChannelResponse, error) {
	var resp *SalesChannelResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sc, err := repos.Channels().FindByID(ctx, id)
		if err != nil {
			return err
		}
		patch := channel.UpdatePatch{
			Name:        req.Name,
			Description: req.Description,
			IsDisabled:  req.IsDisabled,
		}
		if err := sc.Apply(patch); err != nil {
			return err
		}
		if err := repos.Channels().Save(ctx, sc); err != nil {
			return err
		}
		if err := repos.Events().SaveEvents(ctx, sc.PendingEvents()...); err != nil {
			return err
		}
		sc.ClearEvents()
		resp = ToSalesChannelResponse(sc)
		return nil
	})
	if err != nil {
		return nil, normalizeError(err)
	}
	return resp, nil
}

// Delete soft-removes the channel and emits sales_channel.deleted.
// Deleting a channel that does not exist is treated as success and
// emits nothing. The store's default channel pointer is not cleared.
func (s *SalesChannelService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sc, err := repos.Channels().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil
			}
			return err
		}
		if err := sc.SoftRemove(); err != nil {
			return err
		}
		if err := repos.Channels().SoftRemove(ctx, sc); err != nil {
			return err
		}
		if err := repos.Events().SaveEvents(ctx, sc.PendingEvents()...); err != nil {
			return err
		}
		sc.ClearEvents()
		return nil
	})
	if err != nil {
		return normalizeError(err)
	}
	return nil
}

// CreateDefault is the idempotent store bootstrap: when the store
// already points at a default channel that channel is returned,
// otherwise a channel with fixed defaults is created and assigned.
//
// The read-check-then-create sequence carries no extra locking; two
// concurrent first calls can both observe "no default" and both create
// a channel, one of which wins the final store update. Callers needing
// a strict single-default guarantee must serialize calls themselves.
func (s *SalesChannelService) CreateDefault(ctx context.Context) (*SalesChannelResponse, error) {
	var resp *SalesChannelResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		st, err := repos.Stores().Get(ctx)
		if err != nil {
			return err
		}

		if st.HasDefaultSalesChannel() {
			sc, err := repos.Channels().FindByID(ctx, *st.DefaultSalesChannelID)
			if err != nil {
				return err
			}
			resp = ToSalesChannelResponse(sc)
			return nil
		}

		sc, err := channel.NewDefaultSalesChannel()
		if err != nil {
			return err
		}
		if err := repos.Channels().Save(ctx, sc); err != nil {
			return err
		}
		st.AssignDefaultSalesChannel(sc.ID)
		if err := repos.Stores().Save(ctx, st); err != nil {
			return err
		}
		if err := repos.Events().SaveEvents(ctx, sc.PendingEvents()...); err != nil {
			return err
		}
		sc.ClearEvents()
		resp = ToSalesChannelResponse(sc)
		return nil
	})
	if err != nil {
		return nil, normalizeError(err)
	}
	return resp, nil
}

// AddProducts attaches the given products to the channel. The bulk
// insert skips pairs that already exist, so repeated calls with
// overlapping product sets are safe. On success the channel is
// re-retrieved inside the same transaction and returned fresh.
//
// A foreign-key violation from the insert is never surfaced raw:
// the requested product ids are looked up and the missing subset is
// reported as a not-found error enumerating exactly those ids. When
// every product exists (the violated reference was the channel id),
// the underlying error is reported after generic normalization.
func (s *SalesChannelService) AddProducts(ctx context.Context, channelID uuid.UUID, productIDs []uuid.UUID) (*SalesChannelResponse, error) {
	var resp *SalesChannelResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Channels().AddProducts(ctx, channelID, productIDs); err != nil {
			return err
		}
		sc, err := repos.Channels().FindByID(ctx, channelID)
		if err != nil {
			return err
		}
		resp = ToSalesChannelResponse(sc)
		return nil
	})
	if err != nil {
		if errors.Is(err, shared.ErrForeignKeyViolation) {
			return nil, s.explainMissingProducts(ctx, productIDs, err)
		}
		return nil, normalizeError(err)
	}
	return resp, nil
}

// ListAndCount is a placeholder contract: it always fails with an
// unconditional not-implemented error.
func (s *SalesChannelService) ListAndCount(ctx context.Context) ([]SalesChannelResponse, int64, error) {
	return nil, 0, shared.ErrNotImplemented
}

// explainMissingProducts diagnoses a failed association insert. The
// lookup runs outside the rolled-back transaction.
func (s *SalesChannelService) explainMissingProducts(ctx context.Context, productIDs []uuid.UUID, cause error) error {
	requested := dedupeIDs(productIDs)
	found, err := s.products.FindByIDs(ctx, requested)
	if err != nil {
		return normalizeError(err)
	}

	existing := make(map[uuid.UUID]struct{}, len(found))
	for _, p := range found {
		existing[p.ID] = struct{}{}
	}

	missing := make([]string, 0)
	for _, id := range requested {
		if _, ok := existing[id]; !ok {
			missing = append(missing, id.String())
		}
	}

	if len(missing) == 0 {
		// All products exist, so the violated reference was the
		// channel id. Report the underlying error.
		return normalizeError(cause)
	}

	return shared.NewDomainError(
		"NOT_FOUND",
		fmt.Sprintf("Products %s do not exist", strings.Join(missing, ", ")),
	)
}

// normalizeError passes domain errors through untouched and wraps
// storage-specific error shapes into a uniform representation.
func normalizeError(err error) error {
	if err == nil {
		return nil
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return fmt.Errorf("sales channel storage error: %w", err)
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
