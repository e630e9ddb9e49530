package main

import (
	"context"
	"log/slog"
	"os"

	"fenix/config"
	"fenix/internal/delivery"
	"fenix/internal/delivery/http"
	"fenix/internal/delivery/http/middleware"
	"fenix/internal/delivery/http/router/handler"
	"fenix/internal/delivery/worker"
	"fenix/internal/domain/service"
	"fenix/internal/infra/auth"
	logs "fenix/internal/infra/log"
	"fenix/internal/infra/mail"
	"fenix/internal/infra/persistence/postgres"
	"fenix/internal/infra/whatsapp"
	"fenix/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewProductRepository,
			postgres.NewOrderRepository,
			postgres.NewCartRepository,
			postgres.NewNotificationRepository,
			postgres.NewRecurringOrderRepository,
			postgres.NewSettingsRepository,
			postgres.NewAuditRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPasswordHasher,
			auth.NewJWTService,
			mail.NewSMTPMailer,
			whatsapp.NewClient,
		),
	)
}

// newPasswordHasher creates the bcrypt hasher with the configured cost
func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	cost := 0
	if cfg.Auth != nil {
		cost = cfg.Auth.BcryptCost
	}

	return auth.NewBcryptHasher(cost)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewCatalogService,
			impl.NewCartService,
			impl.NewOrderService,
			impl.NewRecurringService,
			impl.NewNotificationService,
			impl.NewSettingsService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewCatalogHandler,
			handler.NewCartHandler,
			handler.NewOrderHandler,
			handler.NewRecurringHandler,
			handler.NewNotificationHandler,
			handler.NewSettingsHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewMailWorker,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewScheduler,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
