package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jxdata/portal/internal/config"
	"github.com/jxdata/portal/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	leadPollTimeout = time.Second
	leadRetryDelay  = 5 * time.Second
)

// LeadWriter stores a lead.
type LeadWriter interface {
	Create(ctx context.Context, lead *model.Lead) error
}

// LeadWorker consumes persist_leads_queue and inserts leads into PostgreSQL.
type LeadWorker struct {
	leads      LeadWriter
	rdb        *redis.Client
	log        zerolog.Logger
	retryDelay time.Duration
}

// NewLeadWorker creates a new LeadWorker.
func NewLeadWorker(leads LeadWriter, rdb *redis.Client, log zerolog.Logger) *LeadWorker {
	return &LeadWorker{
		leads:      leads,
		rdb:        rdb,
		log:        log.With().Str("component", "lead_worker").Logger(),
		retryDelay: leadRetryDelay,
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *LeadWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *LeadWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or the poll timeout passes.
	result, err := w.rdb.BLPop(ctx, leadPollTimeout, config.WorkerKey.PersistLeadsQueue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	lead, ok := w.decode(result[1])
	if !ok {
		return
	}

	if err := w.leads.Create(ctx, lead); err != nil {
		w.log.Error().Err(err).
			Str("lead_id", lead.ID.String()).
			Dur("retry_in", w.retryDelay).
			Msg("Persist error, re-queuing")
		w.requeue(lead, result[1])

		select {
		case <-ctx.Done():
		case <-time.After(w.retryDelay):
		}
		return
	}

	w.log.Info().Str("lead_id", lead.ID.String()).Msg("Lead stored")
}

// requeue pushes raw back onto the queue. When Redis refuses, the payload is
// logged in full since it exists nowhere else.
func (w *LeadWorker) requeue(lead *model.Lead, raw string) {
	err := w.rdb.RPush(context.Background(), config.WorkerKey.PersistLeadsQueue, raw).Err()
	if err != nil {
		w.log.Error().Err(err).
			Str("lead_id", lead.ID.String()).
			Str("payload", raw).
			Msg("Re-queue failed, lead lost")
	}
}

// decode parses a queued lead. Malformed items are logged and dropped.
func (w *LeadWorker) decode(raw string) (*model.Lead, bool) {
	var lead model.Lead
	if err := json.Unmarshal([]byte(raw), &lead); err != nil {
		w.log.Error().Err(err).Str("payload", raw).Msg("Dropping malformed lead")
		return nil, false
	}
	return &lead, true
}

// drain processes all remaining items in the queue before shutdown.
func (w *LeadWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.WorkerKey.PersistLeadsQueue).Result()
		if err != nil {
			break
		}

		lead, ok := w.decode(result)
		if !ok {
			continue
		}

		if err := w.leads.Create(ctx, lead); err != nil {
			w.log.Error().Err(err).Str("lead_id", lead.ID.String()).Msg("Drain persist error")
			w.requeue(lead, result)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
