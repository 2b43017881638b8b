package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/lib/pq"
	"github.com/sony/gobreaker"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/metrics"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/config"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

const (
	listenerMinReconnectInterval = 10 * time.Second
	listenerMaxReconnectInterval = time.Minute
	outboxChannelName            = "outbox_channel"

	eventProcessTimeout     = 30 * time.Second
	batchProcessTimeout     = 60 * time.Second
	periodicProcessInterval = 90 * time.Second

	healthCheckStaleThreshold = 5 * time.Minute

	maxEventsPerBatch = 100
)

const markProcessedQuery = `UPDATE outbox_events SET processed_at = NOW() WHERE id = $1`

// errInvalidPayload marks an event that can never be published. Such events
// are marked processed so they do not block the queue.
var errInvalidPayload = errors.New("invalid event payload")

// Relay listens for PostgreSQL NOTIFY signals on outbox_channel and forwards
// outbox rows to the event publisher. A periodic sweep picks up anything a
// notification missed.
type Relay struct {
	db            *sql.DB
	publisher     ports.EventPublisher
	listener      *pq.Listener
	dbURL         string
	dbCB          *gobreaker.CircuitBreaker
	lastProcessed atomic.Int64
	healthy       atomic.Bool
}

func NewRelay(db *sql.DB, dbURL string, publisher ports.EventPublisher) *Relay {
	r := &Relay{
		db:        db,
		dbURL:     dbURL,
		publisher: publisher,
		dbCB:      config.NewCircuitBreaker(config.BreakerRelayPostgres),
	}
	r.markProgress()
	return r
}

// IsHealthy is the liveness check. An open breaker is degraded, not dead.
func (r *Relay) IsHealthy() bool {
	return r.healthy.Load()
}

// IsReady reports whether the relay can currently move events.
func (r *Relay) IsReady() bool {
	if r.dbCB.State() == gobreaker.StateOpen {
		return false
	}
	last := time.Unix(0, r.lastProcessed.Load())
	if time.Since(last) > healthCheckStaleThreshold {
		return false
	}
	return r.healthy.Load()
}

func (r *Relay) markProgress() {
	r.lastProcessed.Store(time.Now().UnixNano())
	r.healthy.Store(true)
}

// Start blocks until ctx is cancelled.
func (r *Relay) Start(ctx context.Context) error {
	reportProblem := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("outbox relay: listener error: %v", err)
		}
	}

	r.listener = pq.NewListener(r.dbURL, listenerMinReconnectInterval, listenerMaxReconnectInterval, reportProblem)
	defer r.listener.Close()

	if err := r.listener.Listen(outboxChannelName); err != nil {
		return err
	}

	log.Printf("outbox relay: listening on '%s' for notifications...", outboxChannelName)

	if err := r.processUnprocessedEvents(ctx); err != nil {
		log.Printf("outbox relay: error processing startup backlog: %v", err)
	}

	ticker := time.NewTicker(periodicProcessInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("outbox relay: shutting down...")
			return ctx.Err()

		case notification := <-r.listener.Notify:
			if notification == nil {
				// pq sends nil after a reconnect; events may have been missed.
				log.Println("outbox relay: listener reconnected, sweeping backlog")
				r.healthy.Store(false)
				if err := r.processUnprocessedEvents(ctx); err == nil {
					r.markProgress()
				}
				continue
			}

			if err := r.processEventByID(ctx, notification.Extra); err != nil {
				log.Printf("outbox relay: error processing event %s: %v", notification.Extra, err)
			} else {
				r.markProgress()
			}

		case <-ticker.C:
			go r.listener.Ping()

			if err := r.processUnprocessedEvents(ctx); err != nil {
				log.Printf("outbox relay: error in periodic processing: %v", err)
			} else {
				r.markProgress()
			}
		}
	}
}

// dispatch publishes one outbox row. It returns errInvalidPayload for rows
// that should be discarded and the publisher error for rows worth retrying.
func (r *Relay) dispatch(ctx context.Context, evt ports.OutboxEvent) error {
	if evt.Type == "" || !json.Valid(evt.Payload) {
		metrics.EventsFailed.WithLabelValues(evt.Type).Inc()
		return errInvalidPayload
	}

	if err := r.publisher.Publish(ctx, evt); err != nil {
		metrics.EventsFailed.WithLabelValues(evt.Type).Inc()
		return err
	}

	metrics.EventsPublished.WithLabelValues(evt.Type).Inc()
	return nil
}

func (r *Relay) processEventByID(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, eventProcessTimeout)
	defer cancel()

	_, err := r.dbCB.Execute(func() (interface{}, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		var evt ports.OutboxEvent
		err = tx.QueryRowContext(ctx, `
			SELECT id, event_type, payload, created_at
			FROM outbox_events
			WHERE id = $1 AND processed_at IS NULL
			FOR UPDATE SKIP LOCKED`, eventID).Scan(&evt.ID, &evt.Type, &evt.Payload, &evt.CreatedAt)
		if err == sql.ErrNoRows {
			// already handled by the sweep or another relay
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		if err := r.dispatch(ctx, evt); err != nil {
			if !errors.Is(err, errInvalidPayload) {
				return nil, err
			}
			log.Printf("outbox relay: discarding event %s: %v", evt.ID, err)
		}

		if _, err := tx.ExecContext(ctx, markProcessedQuery, evt.ID); err != nil {
			return nil, err
		}
		return nil, tx.Commit()
	})
	return err
}

// processUnprocessedEvents publishes the oldest pending events in creation
// order. A publish failure leaves that row pending for the next sweep.
func (r *Relay) processUnprocessedEvents(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, batchProcessTimeout)
	defer cancel()

	_, err := r.dbCB.Execute(func() (interface{}, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		rows, err := tx.QueryContext(ctx, `
			SELECT id, event_type, payload, created_at
			FROM outbox_events
			WHERE processed_at IS NULL
			ORDER BY created_at, id
			LIMIT $1
			FOR UPDATE SKIP LOCKED`, maxEventsPerBatch)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var pending []ports.OutboxEvent
		for rows.Next() {
			var evt ports.OutboxEvent
			if err := rows.Scan(&evt.ID, &evt.Type, &evt.Payload, &evt.CreatedAt); err != nil {
				return nil, err
			}
			pending = append(pending, evt)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}

		for _, evt := range pending {
			if err := r.dispatch(ctx, evt); err != nil {
				if !errors.Is(err, errInvalidPayload) {
					log.Printf("outbox relay: failed to publish event %s: %v", evt.ID, err)
					continue
				}
				log.Printf("outbox relay: discarding event %s: %v", evt.ID, err)
			}

			if _, err := tx.ExecContext(ctx, markProcessedQuery, evt.ID); err != nil {
				return nil, err
			}
			log.Printf("outbox relay: processed event %s (%s)", evt.ID, evt.Type)
		}

		return nil, tx.Commit()
	})
	return err
}
