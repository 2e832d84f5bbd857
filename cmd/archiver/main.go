package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"turnero/internal/archiver"
	tenantrepository "turnero/internal/tenants/repository"
	tenantservice "turnero/internal/tenants/service"
	tenantvalidator "turnero/internal/tenants/validator"
	"turnero/internal/tenantstore"
	"turnero/pkg/config"
	"turnero/pkg/kafka"
	kafka_config "turnero/pkg/kafka/config"
)

const ServiceName = "archiver"

func main() {
	once := flag.Bool("once", false, "run a single sweep and exit")
	flag.Parse()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	kafkaCfg := kafka_config.Load()
	publisher, err := kafka.NewPublisher(kafkaCfg)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka publisher", "error", err)
	}
	defer publisher.Close()

	store := tenantstore.NewMongoStore(cfg)
	tenantRepo := tenantrepository.NewMongoTenantRepository(cfg)
	tenantSvc := tenantservice.NewTenantService(
		tenantRepo,
		store,
		tenantvalidator.NewTenantValidator(cfg.Log),
		cfg,
	)

	worker := archiver.New(store, tenantSvc, publisher, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		if err := worker.RunOnce(ctx); err != nil {
			cfg.Log.Fatal("Archive sweep failed", "error", err)
		}
		return
	}

	cfg.Log.Info("Starting archiver", "sweep_interval", cfg.SweepInterval)
	worker.Run(ctx)
	cfg.Log.Info("Archiver stopped")
}
