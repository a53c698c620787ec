package cmd

import (
	"context"
	"fmt"
	"time"

	"croupier/application"
	"croupier/bot"
	"croupier/config"
	"croupier/database"
	"croupier/domain/events"
	"croupier/infrastructure"
	"croupier/repository"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	setupLogging(cfg)

	log.Info("Starting croupier bot...")

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	eventBus := infrastructure.NewEventBus()

	// Audit trail subscriber
	var auditWriter *application.AuditWriter
	if cfg.AuditLogPath != "" {
		auditWriter, err = application.NewAuditWriter(cfg.AuditLogPath)
		if err != nil {
			return fmt.Errorf("failed to open audit log: %w", err)
		}
		eventBus.Subscribe(events.EventTypeBalanceChange, auditWriter.HandleBalanceChange)
		log.Infof("Audit log enabled at %s", cfg.AuditLogPath)
	}

	// Optional NATS forwarding of all domain events
	var natsClient *infrastructure.NATSClient
	if cfg.NATSServers != "" {
		natsClient = infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		natsPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
		if err := natsPublisher.EnsureEventStream(); err != nil {
			return fmt.Errorf("failed to ensure NATS event stream: %w", err)
		}
		subscribeForwarder(eventBus, natsPublisher)
		log.Info("NATS event forwarding enabled")
	}

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(cfg, uowFactory)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	drawWorker := application.NewLotteryDrawWorker(uowFactory, discordBot.LotteryAnnouncer())
	stopWorker, err := drawWorker.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start lottery draw worker: %w", err)
	}

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	stopWorker()

	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	if auditWriter != nil {
		if err := auditWriter.Close(); err != nil {
			log.Errorf("Error closing audit log: %v", err)
		}
	}
	if natsClient != nil {
		if err := natsClient.Close(); err != nil {
			log.Errorf("Error closing NATS connection: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}

// subscribeForwarder wires every domain event type through to the external
// publisher
func subscribeForwarder(bus *infrastructure.EventBus, publisher *infrastructure.NATSEventPublisher) {
	forward := func(ctx context.Context, event events.Event) {
		if err := publisher.Publish(event); err != nil {
			log.Errorf("Failed to forward %s event: %v", event.Type(), err)
		}
	}
	for _, eventType := range []events.EventType{
		events.EventTypeBalanceChange,
		events.EventTypeUserRegistered,
		events.EventTypeLotteryDrawCompleted,
		events.EventTypeEscrowDecided,
	} {
		bus.Subscribe(eventType, forward)
	}
}

func setupLogging(cfg *config.Config) {
	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
		log.SetLevel(log.InfoLevel)
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.DebugLevel)
}
