package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/medcost/internal/config"
	"github.com/davidbz/medcost/internal/domain"
	"github.com/davidbz/medcost/internal/http"
	"github.com/davidbz/medcost/internal/http/middleware"
	"github.com/davidbz/medcost/internal/observability"
	"github.com/davidbz/medcost/internal/resources"
)

const shutdownTimeout = 10 * time.Second

func main() {
	container := buildContainer()

	// Resolving the server builds the cost tables first; a missing or
	// malformed table or default stops the process here.
	err := container.Invoke(func(server *http.Server, logger *zap.Logger) error {
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", dig.RootCause(err))
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(func(logger *zap.Logger) domain.EventPublisher {
		return observability.NewEventBus(logger)
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}

	// Resources
	if err := container.Provide(func(cfg *config.CostsConfig) (domain.ResourceReader, error) {
		return resources.NewLoader(cfg.ResourceDir)
	}); err != nil {
		log.Fatalf("Failed to provide resource loader: %v", err)
	}

	// Cost tables, loaded once before anything can price an entry.
	if err := container.Provide(func(
		cfg *config.CostsConfig,
		reader domain.ResourceReader,
		events domain.EventPublisher,
	) (*domain.CostTables, error) {
		ctx := context.Background()

		tables, err := domain.LoadCostTables(ctx, reader, domain.TableSources{
			Procedures:    resources.ProceduresPath,
			Medications:   resources.MedicationsPath,
			Encounters:    resources.EncountersPath,
			Immunizations: resources.ImmunizationsPath,
		}, cfg.Defaults())
		if err != nil {
			var loadErr *domain.LoadError
			if errors.As(err, &loadErr) {
				observability.FromContext(ctx).Error("required cost table unavailable",
					observability.String("resource", loadErr.Resource),
					observability.Error(loadErr.Err),
				)
			}
			return nil, err
		}

		events.Publish(ctx, "cost_tables.loaded", tables.Summary())
		return tables, nil
	}); err != nil {
		log.Fatalf("Failed to provide cost tables: %v", err)
	}

	// Domain Services
	if err := container.Provide(func(tables *domain.CostTables) domain.CostCalculator {
		return domain.NewCostService(tables)
	}); err != nil {
		log.Fatalf("Failed to provide cost service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
