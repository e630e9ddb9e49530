// Package worker contains the background delivery loops: the notification
// email dispatcher and the periodic scheduler.
package worker

import (
	"context"
	"log/slog"
	"time"

	"fenix/config"
	"fenix/internal/delivery"
	"fenix/internal/domain/entity"
	"fenix/internal/domain/repository"
	"fenix/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultPollInterval = 30 * time.Second
	defaultBatchSize    = 20
	defaultMaxAttempts  = 5
)

// MailWorkerParams holds dependencies for the mail dispatcher.
type MailWorkerParams struct {
	fx.In

	Lc               fx.Lifecycle
	Cfg              *config.Config
	Logger           *slog.Logger
	NotificationRepo repository.NotificationRepository
	UserRepo         repository.UserRepository
	SettingsRepo     repository.SettingsRepository
	Mailer           service.Mailer
}

// mailWorker drains the notification outbox: every pending notification row
// becomes one localized email, retried until MaxAttempts.
type mailWorker struct {
	cfg              *config.Config
	logger           *slog.Logger
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	settingsRepo     repository.SettingsRepository
	mailer           service.Mailer

	pollInterval time.Duration
	batchSize    int
	maxAttempts  int

	cancel context.CancelFunc
}

// NewMailWorker creates the notification email dispatcher.
func NewMailWorker(params MailWorkerParams) (delivery.Delivery, error) {
	w := &mailWorker{
		cfg:              params.Cfg,
		logger:           params.Logger,
		notificationRepo: params.NotificationRepo,
		userRepo:         params.UserRepo,
		settingsRepo:     params.SettingsRepo,
		mailer:           params.Mailer,
		pollInterval:     defaultPollInterval,
		batchSize:        defaultBatchSize,
		maxAttempts:      defaultMaxAttempts,
	}

	if mw := params.Cfg.MailWorker; mw != nil {
		if mw.PollInterval > 0 {
			w.pollInterval = mw.PollInterval
		}
		if mw.BatchSize > 0 {
			w.batchSize = mw.BatchSize
		}
		if mw.MaxAttempts > 0 {
			w.maxAttempts = mw.MaxAttempts
		}
	}

	params.Lc.Append(fx.Hook{
		OnStop: w.stop,
	})

	return w, nil
}

// Serve polls the outbox until the context is cancelled.
func (w *mailWorker) Serve(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)

	w.logger.Info("Starting mail worker",
		slog.Duration("pollInterval", w.pollInterval),
		slog.Int("batchSize", w.batchSize))

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := w.dispatchBatch(ctx); err != nil {
				w.logger.Error("Mail dispatch batch failed", slog.Any("error", err))
			}
		}
	}
}

func (w *mailWorker) stop(ctx context.Context) error {
	w.logger.Info("Shutting down mail worker")
	if w.cancel != nil {
		w.cancel()
	}

	return nil
}

// dispatchBatch sends one batch of pending notification emails. Failures are
// recorded per row and never abort the batch.
func (w *mailWorker) dispatchBatch(ctx context.Context) error {
	pending, err := w.notificationRepo.ListPendingEmail(ctx, w.maxAttempts, w.batchSize)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(pending) == 0 {
		return nil
	}

	settings, err := w.settingsRepo.Get(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	for _, notification := range pending {
		if err := w.dispatchOne(ctx, notification, settings); err != nil {
			w.logger.Warn("Notification email failed",
				slog.String("notificationId", notification.ID.String()),
				slog.Any("error", err))

			if markErr := w.notificationRepo.MarkEmailFailed(ctx, notification.ID, err.Error()); markErr != nil {
				w.logger.Error("Failed to record email failure", slog.Any("error", markErr))
			}

			continue
		}

		if markErr := w.notificationRepo.MarkEmailSent(ctx, notification.ID); markErr != nil {
			w.logger.Error("Failed to record email success", slog.Any("error", markErr))
		}
	}

	return nil
}

func (w *mailWorker) dispatchOne(ctx context.Context, notification *entity.Notification, settings *entity.PlatformSettings) error {
	recipient, err := w.userRepo.FindByID(ctx, notification.UserID)
	if err != nil {
		return errors.Wrap(err, "load recipient")
	}

	lang := entity.ResolveLanguage(recipient.Language, settings.DefaultLanguage)
	subject, body := notification.Localized(lang)

	return w.mailer.Send(ctx, &service.Email{
		To:      recipient.Email,
		Subject: subject,
		Body:    body,
	})
}
