package main

import (
	availabilityhandler "turnero/internal/availability/handler"
	availabilityservice "turnero/internal/availability/service"
	blockhandler "turnero/internal/blocks/handler"
	blockservice "turnero/internal/blocks/service"
	bookinghandler "turnero/internal/bookings/handler"
	bookingservice "turnero/internal/bookings/service"
	bookingvalidator "turnero/internal/bookings/validator"
	cancellationhandler "turnero/internal/cancellations/handler"
	cancellationservice "turnero/internal/cancellations/service"
	"turnero/internal/hours"
	reporthandler "turnero/internal/reports/handler"
	reportservice "turnero/internal/reports/service"
	tenanthandler "turnero/internal/tenants/handler"
	tenantrepository "turnero/internal/tenants/repository"
	tenantservice "turnero/internal/tenants/service"
	tenantvalidator "turnero/internal/tenants/validator"
	"turnero/internal/tenantstore"
	"turnero/pkg/app"
	"turnero/pkg/config"
	"turnero/pkg/kafka"
	kafka_config "turnero/pkg/kafka/config"
)

const ServiceName = "booking-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	kafkaCfg := kafka_config.Load()
	publisher, err := kafka.NewPublisher(kafkaCfg)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka publisher", "error", err)
	}
	defer publisher.Close()

	cfg.Log.Info("Starting booking API")

	store := tenantstore.NewMongoStore(cfg)
	resolver := hours.NewResolver(cfg)
	tenantRepo := tenantrepository.NewMongoTenantRepository(cfg)

	tenantSvc := tenantservice.NewTenantService(
		tenantRepo,
		store,
		tenantvalidator.NewTenantValidator(cfg.Log),
		cfg,
	)
	bookingSvc := bookingservice.NewBookingService(
		store,
		bookingvalidator.NewBookingValidator(cfg.Log),
		resolver,
		publisher,
		cfg,
	)
	availabilitySvc := availabilityservice.NewAvailabilityService(store, resolver, cfg)
	cancellationSvc := cancellationservice.NewCancellationService(store, cfg)
	blockSvc := blockservice.NewBlockService(store, cfg)
	reportSvc := reportservice.NewReportService(store, cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		tenanthandler.NewTenantHandler(tenantSvc, cfg.Log),
		bookinghandler.NewBookingHandler(bookingSvc, cfg.Log),
		availabilityhandler.NewAvailabilityHandler(availabilitySvc, cfg.Log),
		cancellationhandler.NewCancellationHandler(cancellationSvc, cfg.Log),
		blockhandler.NewBlockHandler(blockSvc, cfg.Log),
		reporthandler.NewReportHandler(reportSvc, cfg.Log),
	)
	serverApp.Run()
}
