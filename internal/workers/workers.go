package workers

import (
	"github.com/avelasq/accountgate/internal/adapter"
	"github.com/avelasq/accountgate/internal/config"
	"github.com/avelasq/accountgate/internal/logger"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background workers enabled by the configuration.
// With no answer service configured the aggregate is empty and Run is a no-op.
func NewWorkers(answers adapter.AnswerService, cfg config.StructuredConfig, logger *logger.Logger) *Workers {
	w := &Workers{}

	if answers != nil && cfg.Workers.HealthInterval > 0 {
		w.workers = append(w.workers, newHealthPoller(answers, cfg, logger))
	}

	return w
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop stops every worker that supports being stopped.
func (w *Workers) Stop() {
	for _, worker := range w.workers {
		if s, ok := worker.(interface{ Stop() }); ok {
			s.Stop()
		}
	}
}
