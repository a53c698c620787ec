package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"croupier/cmd"
	"croupier/config"
	"croupier/database"
	"croupier/domain/services"
	"croupier/infrastructure"
	"croupier/repository"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Missing .env is fine, real deployments use environment variables
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("Error loading .env file: %v", err)
	}

	// Check for subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			if err := handleMigrationCommand(); err != nil {
				log.Fatalf("Migration error: %v", err)
			}
			return
		case "update-balance":
			if err := handleUpdateBalanceCommand(); err != nil {
				log.Fatalf("Update balance error: %v", err)
			}
			return
		}
	}

	// Normal bot operation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	// Run the application
	if err := cmd.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

// handleUpdateBalanceCommand sets an account balance straight from the
// operator shell, recording an admin_adjust transaction like /adjust_balance
func handleUpdateBalanceCommand() error {
	if len(os.Args) < 4 {
		return fmt.Errorf("usage: croupier update-balance <discord_id> <balance>")
	}

	discordID, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid discord ID %q: %w", os.Args[2], err)
	}
	balance, err := strconv.ParseInt(os.Args[3], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid balance %q: %w", os.Args[3], err)
	}

	ctx := context.Background()
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	uow := repository.NewUnitOfWorkFactory(db, infrastructure.NewEventBus()).Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	ledger := services.NewLedgerService(uow.AccountRepository(), uow.TransactionRepository(), uow.EventBus())
	if _, err := ledger.GetOrCreateAccount(ctx, discordID); err != nil {
		return err
	}
	transaction, err := ledger.SetBalance(ctx, discordID, balance, map[string]any{"source": "cli"})
	if err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if transaction == nil {
		log.Infof("Balance for %d already %d, nothing to do", discordID, balance)
		return nil
	}
	log.Infof("Balance for %d set to %d (change %+d)", discordID, balance, transaction.ChangeAmount)
	return nil
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: croupier migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}
