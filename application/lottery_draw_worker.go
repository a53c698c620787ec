package application

import (
	"context"
	"fmt"
	"time"

	"croupier/config"
	"croupier/domain/interfaces"
	"croupier/domain/services"

	log "github.com/sirupsen/logrus"
)

// LotteryAnnouncer defines the interface for posting draw results to Discord
type LotteryAnnouncer interface {
	// AnnounceDrawResult posts the outcome of a completed draw
	AnnounceDrawResult(ctx context.Context, result *interfaces.LotteryDrawResult) error
}

// LotteryDrawWorker runs the weekly lottery draw on schedule
type LotteryDrawWorker struct {
	uowFactory UnitOfWorkFactory
	announcer  LotteryAnnouncer
	scheduler  *Scheduler
}

// NewLotteryDrawWorker creates a new lottery draw worker. The announcer may
// be nil, in which case results are only logged.
func NewLotteryDrawWorker(uowFactory UnitOfWorkFactory, announcer LotteryAnnouncer) *LotteryDrawWorker {
	return &LotteryDrawWorker{
		uowFactory: uowFactory,
		announcer:  announcer,
		scheduler:  NewScheduler(),
	}
}

// Start schedules the weekly draw and returns a stop function. If the
// process starts after the draw time on a draw day, a catch-up attempt runs
// immediately; the same-day guard makes it a no-op when the draw already
// happened.
func (w *LotteryDrawWorker) Start(ctx context.Context) (func(), error) {
	cfg := config.Get()

	err := w.scheduler.ScheduleWeekly(cfg.LotteryDrawWeekday, cfg.LotteryDrawHour, cfg.LotteryDrawMinute, func() {
		if err := w.RunDraw(ctx); err != nil {
			log.WithError(err).Error("Scheduled lottery draw failed")
		}
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if int(now.Weekday()) == cfg.LotteryDrawWeekday {
		drawTime := time.Date(now.Year(), now.Month(), now.Day(), cfg.LotteryDrawHour, cfg.LotteryDrawMinute, 0, 0, time.UTC)
		if !now.Before(drawTime) {
			log.Info("Draw time already passed today, running catch-up draw")
			if err := w.RunDraw(ctx); err != nil {
				log.WithError(err).Error("Catch-up lottery draw failed")
			}
		}
	}

	w.scheduler.Start()
	log.Info("Lottery draw worker started")

	return func() {
		w.scheduler.Stop()
		log.Info("Lottery draw worker stopped")
	}, nil
}

// RunDraw executes one draw attempt inside a unit of work
func (w *LotteryDrawWorker) RunDraw(ctx context.Context) error {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ledger := services.NewLedgerService(uow.AccountRepository(), uow.TransactionRepository(), uow.EventBus())
	lottery := services.NewLotteryService(
		uow.AccountRepository(),
		uow.LotteryEntryRepository(),
		uow.LotteryDrawRepository(),
		ledger,
		uow.EventBus(),
	)

	result, err := lottery.Draw(ctx, time.Now())
	if err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit draw: %w", err)
	}

	if result.AlreadyDrawn {
		return nil
	}

	if w.announcer != nil {
		if err := w.announcer.AnnounceDrawResult(ctx, result); err != nil {
			// The draw is committed; a failed announcement is only logged
			log.WithError(err).Error("Failed to announce lottery draw result")
		}
	}

	return nil
}
