package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/degreeplan/internal/app"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	StudentID string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	log zerolog.Logger
}

// NewLogUseCaseObserver writes use-case events to log. Failures log at
// error level with the engine code attached.
func NewLogUseCaseObserver(log zerolog.Logger) UseCaseObserver {
	return &logUseCaseObserver{log: log}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	ev := o.log.Info()
	if event.Err != nil {
		ev = o.log.Error().Err(event.Err).Str("code", string(app.CodeOf(event.Err)))
	}
	ev.Str("use_case", event.Name).
		Str("student_id", event.StudentID).
		Int64("duration_ms", event.Duration.Milliseconds()).
		Bool("success", event.Success).
		Fields(event.Fields).
		Msg("service_use_case")
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// track starts a use-case measurement; call the returned func with the
// final error once the use case finishes.
func track(ctx context.Context, obs UseCaseObserver, name, studentID string, fields map[string]any) func(error) {
	startedAt := time.Now().UTC()
	return func(err error) {
		obs.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StudentID: studentID,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}
}
