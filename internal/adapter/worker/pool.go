package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kohai/gamecredit/internal/adapter/config"
	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/kohai/gamecredit/internal/core/port"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	backoffBase  = 10 * time.Second
	backoffMax   = 5 * time.Minute
	storeTimeout = 5 * time.Second
)

// Pool runs queued jobs on a fixed number of workers. Jobs are claimed from
// the store in polls; a job that fails with a transient error is put back
// with exponential backoff until its attempts run out.
type Pool struct {
	store   port.JobStore
	handler port.JobHandler
	workers int
	poll    time.Duration
	now     func() time.Time
	logger  *zap.Logger

	mu         sync.Mutex
	pauseUntil time.Time
}

func NewPool(store port.JobStore, handler port.JobHandler, conf *config.Worker, logger *zap.Logger) *Pool {
	workers := conf.Count
	if workers < 1 {
		workers = 1
	}
	poll := conf.PollInterval
	if poll <= 0 {
		poll = time.Second
	}

	return &Pool{
		store:   store,
		handler: handler,
		workers: workers,
		poll:    poll,
		now:     time.Now,
		logger:  logger,
	}
}

// Run blocks until ctx is done.
func (p *Pool) Run(ctx context.Context) error {
	jobs := make(chan *domain.Job)
	g, ctx := errgroup.WithContext(ctx)

	for i := range p.workers {
		g.Go(func() error {
			for job := range jobs {
				p.waitPause(ctx)
				p.process(ctx, job)
			}
			p.logger.Debug("Finished worker", zap.Int("worker", i))
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		p.fetch(ctx, jobs)
		return nil
	})

	return g.Wait()
}

func (p *Pool) fetch(ctx context.Context, jobs chan<- *domain.Job) {
	ticker := time.NewTicker(p.poll)
	defer ticker.Stop()

	for {
		if !p.paused() {
			claimed, err := p.store.ClaimJobs(ctx, p.workers)
			if err != nil && ctx.Err() == nil {
				p.logger.Error("Claim jobs", zap.Error(err))
			}
			for _, job := range claimed {
				select {
				case jobs <- job:
				case <-ctx.Done():
					// Unsent jobs are claimed again after their lease runs out.
					return
				}
			}
			if len(claimed) == p.workers {
				continue
			}
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (p *Pool) process(ctx context.Context, job *domain.Job) {
	log := p.logger.With(
		zap.String("job", job.ID.String()),
		zap.String("kind", string(job.Kind)),
		zap.String("order", string(job.OrderNumber)),
		zap.Int("attempt", job.Attempts))
	log.Debug("Start processing job")

	err := p.dispatch(ctx, job)

	if ctx.Err() != nil && err != nil {
		// Left running; the lease hands it to the next worker.
		log.Info("Job interrupted", zap.Error(err))
		return
	}

	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()

	switch {
	case err == nil:
		err = p.store.CompleteJob(storeCtx, job.ID)
		if err != nil {
			log.Error("Complete job", zap.Error(err))
			return
		}
		log.Debug("Finished processing job")

	case domain.IsTransient(err) && !job.FinalAttempt():
		wait := p.backoff(job, err)
		log.Info("Job will be retried", zap.Duration("wait", wait), zap.Error(err))
		if err := p.store.RescheduleJob(storeCtx, job.ID, p.now().Add(wait), err.Error()); err != nil {
			log.Error("Reschedule job", zap.Error(err))
		}

	default:
		log.Warn("Job failed", zap.Error(err))
		if err := p.store.FailJob(storeCtx, job.ID, err.Error()); err != nil {
			log.Error("Fail job", zap.Error(err))
		}
	}
}

func (p *Pool) dispatch(ctx context.Context, job *domain.Job) error {
	switch job.Kind {
	case domain.JobVerifyPayment:
		return p.handler.VerifyPayment(ctx, job.OrderNumber, job.FinalAttempt())
	case domain.JobFulfillOrder:
		return p.handler.FulfillOrder(ctx, job.OrderNumber, job.FinalAttempt())
	}
	return errors.New("unknown job kind " + string(job.Kind))
}

// backoff doubles the delay on every attempt. A Retry-After answer pauses
// every worker and is never undercut.
func (p *Pool) backoff(job *domain.Job, err error) time.Duration {
	wait := backoffBase
	for i := 1; i < job.Attempts && wait < backoffMax; i++ {
		wait *= 2
	}
	if wait > backoffMax {
		wait = backoffMax
	}

	var retryAfter *domain.RetryAfterError
	if errors.As(err, &retryAfter) {
		p.pause(retryAfter.Wait)
		if retryAfter.Wait > wait {
			wait = retryAfter.Wait
		}
	}
	return wait
}

func (p *Pool) pause(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	until := p.now().Add(d)
	if until.After(p.pauseUntil) {
		p.pauseUntil = until
		p.logger.Info("Pause for requests", zap.Duration("retry_after", d))
	}
}

func (p *Pool) paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.now().Before(p.pauseUntil)
}

func (p *Pool) waitPause(ctx context.Context) {
	p.mu.Lock()
	wait := p.pauseUntil.Sub(p.now())
	p.mu.Unlock()
	if wait <= 0 {
		return
	}

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-t.C:
		p.logger.Debug("Pause finished")
	case <-ctx.Done():
	}
}
