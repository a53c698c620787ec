package application

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"croupier/domain/events"

	log "github.com/sirupsen/logrus"
)

// auditHeader is the column layout of the audit CSV
var auditHeader = []string{"timestamp", "discord_id", "transaction_type", "change_amount", "balance_before", "balance_after"}

// AuditWriter appends every committed balance change to a CSV file. It
// subscribes to the event bus, so it only ever observes durable changes.
type AuditWriter struct {
	mu   sync.Mutex
	file *os.File
	w    *csv.Writer
}

// NewAuditWriter opens (or creates) the audit file at path, writing the
// header row on a fresh file
func NewAuditWriter(path string) (*AuditWriter, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat audit file: %w", err)
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(auditHeader); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write audit header: %w", err)
		}
		writer.Flush()
	}

	log.WithField("path", path).Info("Audit writer started")

	return &AuditWriter{
		file: file,
		w:    writer,
	}, nil
}

// HandleBalanceChange records one balance change event. Wire it to the event
// bus with Subscribe(events.EventTypeBalanceChange, ...).
func (a *AuditWriter) HandleBalanceChange(ctx context.Context, event events.Event) {
	change, ok := event.(events.BalanceChangeEvent)
	if !ok {
		return
	}

	record := []string{
		time.Now().UTC().Format(time.RFC3339),
		strconv.FormatInt(change.DiscordID, 10),
		string(change.TransactionType),
		strconv.FormatInt(change.ChangeAmount, 10),
		strconv.FormatInt(change.OldBalance, 10),
		strconv.FormatInt(change.NewBalance, 10),
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.w.Write(record); err != nil {
		log.WithError(err).Error("Failed to write audit record")
		return
	}
	a.w.Flush()
	if err := a.w.Error(); err != nil {
		log.WithError(err).Error("Failed to flush audit record")
	}
}

// Close flushes and closes the audit file
func (a *AuditWriter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.w.Flush()
	if err := a.w.Error(); err != nil {
		a.file.Close()
		return err
	}
	return a.file.Close()
}
