package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/labnet/testledger/addresses"
	"github.com/labnet/testledger/config"
	"github.com/labnet/testledger/export"
	"github.com/labnet/testledger/export/archive"
	"github.com/labnet/testledger/export/lock"
	"github.com/labnet/testledger/export/registry"
	exportRepository "github.com/labnet/testledger/export/repository"
	"github.com/labnet/testledger/facilities"
	facilitiesRepository "github.com/labnet/testledger/facilities/repository"
	"github.com/labnet/testledger/logger"
	"github.com/labnet/testledger/metrics"
	"github.com/labnet/testledger/notifications"
	ordersRepository "github.com/labnet/testledger/orders/repository"
	ordersService "github.com/labnet/testledger/orders/service"
	"github.com/labnet/testledger/organizations"
	organizationsRepository "github.com/labnet/testledger/organizations/repository"
	"github.com/labnet/testledger/outbox"
	patientlinksRepository "github.com/labnet/testledger/patientlinks/repository"
	personsRepository "github.com/labnet/testledger/persons/repository"
	personsService "github.com/labnet/testledger/persons/service"
	"github.com/labnet/testledger/reports"
	resultsRepository "github.com/labnet/testledger/results/repository"
	resultsService "github.com/labnet/testledger/results/service"
	"github.com/labnet/testledger/scoping"
	"github.com/labnet/testledger/selfservice"
	"github.com/labnet/testledger/store"
	"github.com/labnet/testledger/summary"
)

func Start(e *echo.Echo, cfg *config.Config, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) {
	address := fmt.Sprintf(":%d", cfg.HttpPort)
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Errorw("http server stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func SetReady(healthCheck *HealthCheck, db *mongo.Database, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.Client().Ping(ctx, nil); err != nil {
				return err
			}

			// It's important this is set after mongo is initialized, which is ensured
			// by taking a dependency on mongo in the constructor, because lifecycle hooks
			// are executed in topological order
			healthCheck.SetReady(true)
			return nil
		},
	})
}

// Dependencies returns the service's dependency graph without the invocations
// that start the http server. It is shared with the command line tools.
func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			logger.NewProductionLogger,
			logger.Suggar,
			config.NewConfig,
			addresses.NewPassthroughValidator,
			organizationsRepository.NewRepository,
			organizations.NewService,
			facilitiesRepository.NewRepository,
			facilities.NewService,
			scoping.NewRequestGate,
			personsRepository.NewRepository,
			personsService.NewService,
			patientlinksRepository.NewRepository,
			ordersRepository.NewRepository,
			ordersService.NewService,
			outbox.NewRepository,
			resultsRepository.NewRepository,
			resultsService.NewService,
			summary.NewService,
			selfservice.NewService,
			reports.NewGenerator,
			exportRepository.NewRepository,
			NewHealthCheck,
			NewHandler,
			NewServer,
		),
		store.Module,
		metrics.Module,
		notifications.Module,
		lock.Module,
		registry.Module,
		archive.Module,
		export.Module,
	}
}

func MainLoop() {
	deps := append(
		Dependencies(),
		fx.Invoke(export.StartScheduler),
		fx.Invoke(SetReady),
		fx.Invoke(Start),
	)
	fx.New(deps...).Run()
}
