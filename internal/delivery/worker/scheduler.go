package worker

import (
	"context"
	"log/slog"
	"time"

	"fenix/internal/delivery"
	"fenix/internal/usecase"

	"go.uber.org/fx"
)

const schedulerTickInterval = time.Minute

// SchedulerParams holds dependencies for the periodic scheduler.
type SchedulerParams struct {
	fx.In

	Lc        fx.Lifecycle
	Logger    *slog.Logger
	Recurring usecase.RecurringUsecase
	Orders    usecase.OrderUsecase
}

// scheduler runs the periodic jobs: materializing due recurring orders and
// flagging orders that slipped past their delivery window.
type scheduler struct {
	logger    *slog.Logger
	recurring usecase.RecurringUsecase
	orders    usecase.OrderUsecase

	cancel context.CancelFunc
}

// NewScheduler creates the periodic job runner.
func NewScheduler(params SchedulerParams) (delivery.Delivery, error) {
	s := &scheduler{
		logger:    params.Logger,
		recurring: params.Recurring,
		orders:    params.Orders,
	}

	params.Lc.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s, nil
}

// Serve ticks every minute until the context is cancelled.
func (s *scheduler) Serve(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	s.logger.Info("Starting scheduler", slog.Duration("interval", schedulerTickInterval))

	ticker := time.NewTicker(schedulerTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

func (s *scheduler) stop(ctx context.Context) error {
	s.logger.Info("Shutting down scheduler")
	if s.cancel != nil {
		s.cancel()
	}

	return nil
}

// tick runs each job independently so one failure never starves the other.
func (s *scheduler) tick(ctx context.Context, now time.Time) {
	created, err := s.recurring.RunDue(ctx, now)
	if err != nil {
		s.logger.Error("Recurring order run failed", slog.Any("error", err))
	} else if created > 0 {
		s.logger.Info("Materialized recurring orders", slog.Int("created", created))
	}

	flagged, err := s.orders.FlagLateOrders(ctx, now)
	if err != nil {
		s.logger.Error("Late order sweep failed", slog.Any("error", err))
	} else if flagged > 0 {
		s.logger.Info("Flagged late orders", slog.Int("flagged", flagged))
	}
}
