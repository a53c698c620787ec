package lottery

import (
	"context"

	"croupier/application"
	"croupier/domain/interfaces"
	"croupier/domain/services"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the lottery subcommands and draw announcements
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	session    *discordgo.Session
}

// New creates a new lottery feature instance
func New(uowFactory application.UnitOfWorkFactory, session *discordgo.Session) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		session:    session,
	}
}

// HandleCommand routes the lotto subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "buy":
		f.handleBuy(s, i, options[0])
	case "status":
		f.handleStatus(s, i)
	}
}

// lotteryService builds a lottery service bound to a unit of work's
// repositories
func lotteryService(uow application.UnitOfWork) interfaces.LotteryService {
	ledger := services.NewLedgerService(uow.AccountRepository(), uow.TransactionRepository(), uow.EventBus())
	return services.NewLotteryService(
		uow.AccountRepository(),
		uow.LotteryEntryRepository(),
		uow.LotteryDrawRepository(),
		ledger,
		uow.EventBus(),
	)
}

// withLotteryService runs fn against a fresh unit of work, committing on
// success
func (f *Feature) withLotteryService(ctx context.Context, fn func(interfaces.LotteryService) error) error {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := fn(lotteryService(uow)); err != nil {
		return err
	}
	return uow.Commit()
}
