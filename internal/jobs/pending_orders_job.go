package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"github.com/robfig/cron/v3"
)

const (
	// DefaultPendingOrdersSchedule runs the job every thirty seconds.
	DefaultPendingOrdersSchedule = "*/30 * * * * *"

	// DefaultInitialRetryDelay is how long an order waits after its first stock
	// shortage or missing configuration before the job processes it again.
	DefaultInitialRetryDelay = time.Minute
	// DefaultMaxRetryDelay caps the doubling retry delay.
	DefaultMaxRetryDelay = 30 * time.Minute
)

type PendingOrdersReader interface {
	Handle(ctx context.Context, query queries.GetPendingOrdersQuery) ([]queries.GetPendingOrdersQueryResponse, error)
}

type OrderProcessor interface {
	Handle(ctx context.Context, cmd commands.ProcessOrderCommand) error
}

// PendingOrdersJob re-runs the order processor for confirmed and processing orders,
// so orders whose stock arrived late or whose shipments were completed elsewhere
// reach their next state without a client call.
//
// An order failing with a stock shortage or missing configuration needs someone to
// act first, so the job backs off exponentially before processing it again.
type PendingOrdersJob struct {
	reader    PendingOrdersReader
	processor OrderProcessor
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger

	now               func() time.Time
	initialRetryDelay time.Duration
	maxRetryDelay     time.Duration

	mu      sync.Mutex
	retries map[kernel.UUID]*retry
}

type retry struct {
	backoff *backoff.ExponentialBackOff
	at      time.Time
}

// PendingOrdersJobOption customizes a PendingOrdersJob.
type PendingOrdersJobOption func(*PendingOrdersJob)

// WithRetryDelays sets the first and the longest delay between passes over an order
// that keeps failing for lack of stock or configuration.
func WithRetryDelays(initial, maxDelay time.Duration) PendingOrdersJobOption {
	return func(j *PendingOrdersJob) {
		if initial > 0 {
			j.initialRetryDelay = initial
		}
		if maxDelay >= j.initialRetryDelay {
			j.maxRetryDelay = maxDelay
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) PendingOrdersJobOption {
	return func(j *PendingOrdersJob) {
		j.now = now
	}
}

// NewPendingOrdersJob creates the job. An empty schedule falls back to
// DefaultPendingOrdersSchedule; batchSize 0 uses the query default.
func NewPendingOrdersJob(
	reader PendingOrdersReader,
	processor OrderProcessor,
	schedule string,
	batchSize int,
	logger *slog.Logger,
	opts ...PendingOrdersJobOption,
) *PendingOrdersJob {
	if schedule == "" {
		schedule = DefaultPendingOrdersSchedule
	}
	j := &PendingOrdersJob{
		reader:            reader,
		processor:         processor,
		schedule:          schedule,
		batchSize:         batchSize,
		cron:              cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:            logger.With("component", "pending_orders_job"),
		now:               time.Now,
		initialRetryDelay: DefaultInitialRetryDelay,
		maxRetryDelay:     DefaultMaxRetryDelay,
		retries:           make(map[kernel.UUID]*retry),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Start schedules the job.
func (j *PendingOrdersJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Pending orders job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending orders job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *PendingOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pending orders job stopped")
}

// RunOnce processes one batch of pending orders and returns how many of them were
// processed without error. A failing order does not stop the batch, and orders
// still backing off are skipped.
func (j *PendingOrdersJob) RunOnce(ctx context.Context) (int, error) {
	query, err := queries.NewGetPendingOrdersQuery(j.batchSize)
	if err != nil {
		return 0, err
	}

	pending, err := j.reader.Handle(ctx, query)
	if err != nil {
		return 0, err
	}

	now := j.now()
	j.forgetStaleRetries(now)

	processed := 0
	for _, o := range pending {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}
		if j.backingOff(o.ID, now) {
			continue
		}

		cmd, cmdErr := commands.NewProcessOrderCommand(o.ID)
		if cmdErr != nil {
			return processed, cmdErr
		}

		if err = j.processor.Handle(ctx, cmd); err != nil {
			j.report(ctx, o.ID, err, now)
			continue
		}
		j.clearRetry(o.ID)
		processed++
	}

	return processed, nil
}

func (j *PendingOrdersJob) report(ctx context.Context, orderID kernel.UUID, err error, now time.Time) {
	switch {
	case errors.Is(err, ports.ErrOrderIsLocked):
		// someone else is processing it right now
		j.logger.DebugContext(ctx, "Order skipped", "order_id", orderID.String(), "error", err)
	case errors.Is(err, errs.ErrStockShortage), errors.Is(err, errs.ErrConfigurationIsMissing):
		delay := j.scheduleRetry(orderID, now)
		j.logger.WarnContext(ctx, "Order is not processable yet",
			"order_id", orderID.String(), "retry_in", delay.String(), "error", err)
	default:
		j.logger.ErrorContext(ctx, "Order processing failed", "order_id", orderID.String(), "error", err)
	}
}

func (j *PendingOrdersJob) backingOff(orderID kernel.UUID, now time.Time) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	r, ok := j.retries[orderID]
	return ok && now.Before(r.at)
}

func (j *PendingOrdersJob) scheduleRetry(orderID kernel.UUID, now time.Time) time.Duration {
	j.mu.Lock()
	defer j.mu.Unlock()

	r, ok := j.retries[orderID]
	if !ok {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = j.initialRetryDelay
		b.MaxInterval = j.maxRetryDelay
		b.RandomizationFactor = 0
		b.MaxElapsedTime = 0
		b.Reset()
		r = &retry{backoff: b}
		j.retries[orderID] = r
	}

	delay := r.backoff.NextBackOff()
	r.at = now.Add(delay)
	return delay
}

func (j *PendingOrdersJob) clearRetry(orderID kernel.UUID) {
	j.mu.Lock()
	defer j.mu.Unlock()

	delete(j.retries, orderID)
}

// forgetStaleRetries drops orders that were due long ago without being seen again,
// such as orders cancelled meanwhile.
func (j *PendingOrdersJob) forgetStaleRetries(now time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for id, r := range j.retries {
		if now.Sub(r.at) > j.maxRetryDelay {
			delete(j.retries, id)
		}
	}
}
