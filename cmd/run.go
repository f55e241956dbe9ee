package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/itbasis/go-clock"
	log "github.com/sirupsen/logrus"

	"survivorpool/application"
	"survivorpool/config"
	"survivorpool/database"
	"survivorpool/domain/interfaces"
	"survivorpool/infrastructure"
	"survivorpool/repository"
)

// Run wires the application together and blocks until the context is
// cancelled
func Run(ctx context.Context) error {
	cfg := config.Get()

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}
	log.WithField("environment", cfg.Environment).Info("Starting survivor pool")

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrationsWithURL(cfg.GetDatabaseURL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	publisher, cleanup, err := buildPublisher(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	uowFactory := repository.NewUnitOfWorkFactory(db)
	pool := application.NewPoolService(uowFactory, publisher, clock.New())

	worker := application.NewAutopickWorker(pool, time.Duration(cfg.AutopickSweepMinutes)*time.Minute)
	stopWorker := worker.Start(ctx)
	defer stopWorker()

	log.Info("Survivor pool running")
	<-ctx.Done()
	log.Info("Survivor pool stopped")
	return nil
}

// buildPublisher connects to NATS when servers are configured, otherwise
// events are dropped
func buildPublisher(ctx context.Context, cfg *config.Config) (interfaces.EventPublisher, func(), error) {
	if cfg.NATSServers == "" {
		log.Info("No NATS servers configured, event publishing disabled")
		return infrastructure.NewNoopEventPublisher(), func() {}, nil
	}

	client := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := client.Connect(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	publisher := infrastructure.NewNATSEventPublisher(client)
	if err := publisher.EnsureEventStream(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to ensure event stream: %w", err)
	}

	return publisher, func() { client.Close() }, nil
}
