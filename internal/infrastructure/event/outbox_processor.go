package event

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/infrastructure/config"
)

// OutboxProcessor polls the outbox table and relays stored events to
// the event bus. Entries are claimed before delivery, marked sent on
// success and failed with backoff otherwise; retries that exhaust the
// budget go to dead-letter status.
type OutboxProcessor struct {
	repo       shared.OutboxRepository
	publisher  shared.EventPublisher
	serializer *Serializer
	cfg        config.EventConfig
	logger     *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOutboxProcessor creates a new outbox processor
func NewOutboxProcessor(
	repo shared.OutboxRepository,
	publisher shared.EventPublisher,
	serializer *Serializer,
	cfg config.EventConfig,
	logger *zap.Logger,
) *OutboxProcessor {
	return &OutboxProcessor{
		repo:       repo,
		publisher:  publisher,
		serializer: serializer,
		cfg:        cfg,
		logger:     logger.Named("outbox_processor"),
	}
}

// Start launches the polling and cleanup loops
func (p *OutboxProcessor) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.pollLoop(runCtx)

	if p.cfg.CleanupEnabled {
		p.wg.Add(1)
		go p.cleanupLoop(runCtx)
	}

	p.logger.Info("Outbox processor started",
		zap.Duration("poll_interval", p.cfg.PollInterval),
		zap.Int("batch_size", p.cfg.BatchSize),
	)
}

// Stop signals the loops to finish and waits for them
func (p *OutboxProcessor) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	p.logger.Info("Outbox processor stopped")
}

func (p *OutboxProcessor) pollLoop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.processBatch(ctx)
		}
	}
}

func (p *OutboxProcessor) processBatch(ctx context.Context) {
	pending, err := p.repo.FindPending(ctx, p.cfg.BatchSize)
	if err != nil {
		p.logger.Error("Failed to fetch pending outbox entries", zap.Error(err))
		return
	}

	remaining := p.cfg.BatchSize - len(pending)
	if remaining > 0 {
		retryable, err := p.repo.FindRetryable(ctx, time.Now(), remaining)
		if err != nil {
			p.logger.Error("Failed to fetch retryable outbox entries", zap.Error(err))
		} else {
			pending = append(pending, retryable...)
		}
	}
	if len(pending) == 0 {
		return
	}

	ids := make([]uuid.UUID, len(pending))
	for i, e := range pending {
		ids[i] = e.ID
	}
	claimed, err := p.repo.MarkProcessing(ctx, ids)
	if err != nil {
		p.logger.Error("Failed to claim outbox entries", zap.Error(err))
		return
	}

	for _, entry := range claimed {
		p.deliver(ctx, entry)
	}
}

func (p *OutboxProcessor) deliver(ctx context.Context, entry *shared.OutboxEntry) {
	evt, err := p.serializer.Deserialize(entry.EventType, entry.Payload)
	if err == nil {
		err = p.publisher.Publish(ctx, evt)
	}

	if err != nil {
		entry.MarkFailed(err.Error())
		if entry.IsDead() {
			p.logger.Error("Outbox entry moved to dead letter",
				zap.String("entry_id", entry.ID.String()),
				zap.String("event_type", entry.EventType),
				zap.Int("retry_count", entry.RetryCount),
				zap.Error(err),
			)
		} else {
			p.logger.Warn("Outbox entry delivery failed",
				zap.String("entry_id", entry.ID.String()),
				zap.String("event_type", entry.EventType),
				zap.Int("retry_count", entry.RetryCount),
				zap.Error(err),
			)
		}
	} else {
		entry.MarkSent()
	}

	if err := p.repo.Update(ctx, entry); err != nil {
		p.logger.Error("Failed to update outbox entry",
			zap.String("entry_id", entry.ID.String()),
			zap.Error(err),
		)
	}
}

func (p *OutboxProcessor) cleanupLoop(ctx context.Context) {
	defer p.wg.Done()

	// Cleanup runs far less often than delivery
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-p.cfg.CleanupRetention)
			deleted, err := p.repo.DeleteOlderThan(ctx, cutoff)
			if err != nil {
				p.logger.Error("Outbox cleanup failed", zap.Error(err))
				continue
			}
			if deleted > 0 {
				p.logger.Info("Outbox cleanup removed sent entries", zap.Int64("deleted", deleted))
			}
		}
	}
}
