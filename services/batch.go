// services/batch.go
package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"naver-booking-notifier/config"
	"naver-booking-notifier/models"
)

// BatchRunner owns one run end to end: extraction, dispatch, aggregation and
// the handoff to the run log store. The mutex serializes overlapping trigger
// requests so two runs never interleave browser navigation or the latest
// pointer write.
type BatchRunner struct {
	mu         sync.Mutex
	source     BookingSource
	dispatcher *Dispatcher
	store      *RunLogStore
	clock      Clock
}

func NewBatchRunner(source BookingSource, dispatcher *Dispatcher, store *RunLogStore, clock Clock) *BatchRunner {
	return &BatchRunner{source: source, dispatcher: dispatcher, store: store, clock: clock}
}

// ExtractToday collects today's confirmed bookings and persists an
// extraction-only run log.
func (r *BatchRunner) ExtractToday(ctx context.Context) (models.RunLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, err := r.collectLocked(ctx)
	if err != nil {
		return models.RunLog{}, err
	}
	r.persistLocked(run)
	return run, nil
}

// DispatchToday collects today's bookings, dispatches both paths per booking
// and persists the full run with its outcomes.
func (r *BatchRunner) DispatchToday(ctx context.Context) (models.RunLog, models.BatchReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, err := r.collectLocked(ctx)
	if err != nil {
		return models.RunLog{}, models.BatchReport{}, err
	}

	report := r.RunBatch(ctx, run.Bookings)
	run.SendResults = report.Outcomes
	r.persistLocked(run)
	return run, report, nil
}

// RunBatch dispatches the bookings in extraction order. One booking's
// failure never stops the rest, and only the immediate path drives the
// success/failed counters.
func (r *BatchRunner) RunBatch(ctx context.Context, bookings []models.BookingRecord) models.BatchReport {
	report := models.BatchReport{Total: len(bookings)}
	for _, b := range bookings {
		outcome := r.dispatcher.Dispatch(ctx, b)
		report.Outcomes = append(report.Outcomes, outcome)
		if outcome.Immediate.Success {
			report.Success++
		} else {
			report.Failed++
		}
	}
	config.Logger().Info("batch finished",
		zap.Int("total", report.Total),
		zap.Int("success", report.Success),
		zap.Int("failed", report.Failed))
	return report
}

func (r *BatchRunner) collectLocked(ctx context.Context) (models.RunLog, error) {
	if err := r.source.EnsureReady(ctx); err != nil {
		return models.RunLog{}, err
	}
	text, err := r.source.FetchPageText(ctx)
	if err != nil {
		return models.RunLog{}, err
	}

	bookings := ExtractBookings(text)
	now := r.clock.Now()
	config.Logger().Info("bookings extracted",
		zap.Int("count", len(bookings)), zap.Int("page_chars", len(text)))

	return models.RunLog{
		RunID:     uuid.NewString(),
		Timestamp: now,
		Date:      now.Format("2006-01-02"),
		Count:     len(bookings),
		Bookings:  bookings,
	}, nil
}

// Run logs are an audit trail; the notifications themselves already went
// out, so a persistence failure is logged instead of failing the run.
func (r *BatchRunner) persistLocked(run models.RunLog) {
	if _, err := r.store.Persist(run); err != nil {
		config.Logger().Warn("failed to persist run log",
			zap.String("run_id", run.RunID), zap.Error(err))
	}
}
