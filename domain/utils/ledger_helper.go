package utils

import (
	"context"
	"fmt"

	"croupier/domain/entities"
	"croupier/domain/events"
	"croupier/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// RecordTransaction appends a ledger entry and emits the balance change event.
// This is the single entry point for all balance changes in the system.
func RecordTransaction(ctx context.Context, transactionRepo interfaces.TransactionRepository, eventPublisher interfaces.EventPublisher, transaction *entities.Transaction) error {
	if err := transaction.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	if err := transactionRepo.Record(ctx, transaction); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	event := events.BalanceChangeEvent{
		DiscordID:       transaction.DiscordID,
		OldBalance:      transaction.BalanceBefore,
		NewBalance:      transaction.BalanceAfter,
		TransactionType: transaction.TransactionType,
		ChangeAmount:    transaction.ChangeAmount,
	}
	log.WithFields(log.Fields{
		"discordID":       event.DiscordID,
		"oldBalance":      event.OldBalance,
		"newBalance":      event.NewBalance,
		"transactionType": event.TransactionType,
		"changeAmount":    event.ChangeAmount,
	}).Debug("Publishing BalanceChangeEvent")
	if err := eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish balance change event")
	}

	return nil
}
