package workers

import (
	"context"
	"sync"
	"time"

	"github.com/avelasq/accountgate/internal/adapter"
	"github.com/avelasq/accountgate/internal/config"
	"github.com/avelasq/accountgate/internal/logger"
)

// healthPoller probes the answer service liveness endpoint on a ticker and
// logs availability transitions. When configured it also asks the backend to
// rebuild its document index once at startup.
type healthPoller struct {
	answers adapter.AnswerService

	interval          time.Duration
	initializeOnStart bool

	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// healthy holds the last observed state so transitions are logged once,
	// not on every tick.
	healthy bool
}

func newHealthPoller(answers adapter.AnswerService, cfg config.StructuredConfig, logger *logger.Logger) *healthPoller {
	return &healthPoller{
		answers:           answers,
		interval:          cfg.Workers.HealthInterval,
		initializeOnStart: cfg.Answer.InitializeOnStart,
		logger:            logger,
	}
}

// Run implements Worker. It stops any previously running poll loop, then
// launches a background goroutine that probes the backend every interval.
// The goroutine exits when Stop is called.
func (p *healthPoller) Run() {
	interval := p.interval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	p.Stop()

	p.mu.Lock()
	jobCtx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()

		if p.initializeOnStart {
			if err := p.answers.Initialize(jobCtx); err != nil {
				p.logger.Err(err).Msg("answer service index initialization failed")
			} else {
				p.logger.Info().Msg("answer service index initialized")
			}
		}

		p.probe(jobCtx)

		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				p.probe(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the poller is not running.
func (p *healthPoller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

func (p *healthPoller) probe(ctx context.Context) {
	err := p.answers.Health(ctx)

	p.mu.Lock()
	wasHealthy := p.healthy
	p.healthy = err == nil
	p.mu.Unlock()

	switch {
	case err != nil && wasHealthy:
		p.logger.Err(err).Msg("answer service became unhealthy")
	case err == nil && !wasHealthy:
		p.logger.Info().Msg("answer service is healthy")
	}
}
