// internal/pkg/saga/saga.go
package saga

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Step is one action of a multi-write workflow together with the action
// that undoes it. Compensate may be nil for steps with nothing to undo.
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga executes steps in order. When a step fails, the compensations of
// every completed step run in reverse order and the step's error is
// returned. Compensation failures are logged and skipped; the stores
// involved offer no cross-write transaction, so a failed undo is a
// recoverable inconsistency, not a crash.
type Saga struct {
	name   string
	steps  []Step
	logger *zap.Logger
}

func New(name string, logger *zap.Logger) *Saga {
	return &Saga{name: name, logger: logger}
}

func (s *Saga) AddStep(step Step) *Saga {
	s.steps = append(s.steps, step)
	return s
}

func (s *Saga) Execute(ctx context.Context) error {
	for i, step := range s.steps {
		if err := step.Run(ctx); err != nil {
			s.logger.Error("saga step failed, compensating",
				zap.String("saga", s.name),
				zap.String("step", step.Name),
				zap.Error(err),
			)
			s.compensate(ctx, i-1)
			return fmt.Errorf("%s: step %s: %w", s.name, step.Name, err)
		}
	}
	return nil
}

func (s *Saga) compensate(ctx context.Context, from int) {
	for i := from; i >= 0; i-- {
		step := s.steps[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			s.logger.Error("saga compensation failed",
				zap.String("saga", s.name),
				zap.String("step", step.Name),
				zap.Error(err),
			)
		}
	}
}
