package games

import (
	"context"

	"croupier/bot/common"
	"croupier/domain/entities"
	"croupier/domain/games"
	"croupier/domain/interfaces"
	"croupier/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// placeBet debits the stake inside its own unit of work and returns the
// reservation. The debit is committed before any game state exists, so a
// crash mid-game leaves only the recorded stake debit.
func (f *Feature) placeBet(ctx context.Context, discordID int64, game string, stake int64) (*interfaces.Reservation, error) {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	ledger := services.NewLedgerService(uow.AccountRepository(), uow.TransactionRepository(), uow.EventBus())
	wager := services.NewWagerService(uow.AccountRepository(), ledger)

	reservation, err := wager.PlaceBet(ctx, discordID, game, stake)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return reservation, nil
}

// settle credits the payout for a resolved reservation inside its own unit of
// work
func (f *Feature) settle(ctx context.Context, reservation *interfaces.Reservation, outcome games.Outcome, multiplier float64, metadata map[string]any) (*interfaces.SettleResult, error) {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	ledger := services.NewLedgerService(uow.AccountRepository(), uow.TransactionRepository(), uow.EventBus())
	wager := services.NewWagerService(uow.AccountRepository(), ledger)

	result, err := wager.Settle(ctx, reservation, outcome, multiplier, metadata)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

// refund returns a reservation's stake in full inside its own unit of work
func (f *Feature) refund(ctx context.Context, reservation *interfaces.Reservation) (*entities.Transaction, error) {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	ledger := services.NewLedgerService(uow.AccountRepository(), uow.TransactionRepository(), uow.EventBus())
	wager := services.NewWagerService(uow.AccountRepository(), ledger)

	tx, err := wager.Refund(ctx, reservation)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return tx, nil
}

// settleOrRefund settles a resolved reservation. When the settlement cannot
// be recorded the stake is refunded instead, voiding the wager, so no code
// path leaves a stake debited without resolution. A non-nil error means both
// attempts failed and the stake needs manual correction.
func (f *Feature) settleOrRefund(ctx context.Context, reservation *interfaces.Reservation, outcome games.Outcome, multiplier float64, metadata map[string]any) (*interfaces.SettleResult, bool, error) {
	result, err := f.settle(ctx, reservation, outcome, multiplier, metadata)
	if err == nil {
		return result, false, nil
	}
	log.Errorf("Error settling %s bet for user %d: %v", reservation.Game, reservation.DiscordID, err)

	if _, refundErr := f.refund(ctx, reservation); refundErr != nil {
		log.Errorf("Error refunding %s stake for user %d: %v", reservation.Game, reservation.DiscordID, refundErr)
		return nil, false, err
	}
	return nil, true, nil
}

// respondSettleFailure tells the user how a failed settlement was resolved
func respondSettleFailure(s *discordgo.Session, i *discordgo.InteractionCreate, refunded bool) {
	if refunded {
		common.RespondWithError(s, i, "Something went wrong resolving the game. Your stake was returned.")
		return
	}
	common.RespondWithError(s, i, "Unable to settle your bet. Please contact staff.")
}

// respondContent sends a plain public response to a slash command
func respondContent(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		log.Errorf("Error responding to interaction: %v", err)
	}
}

// updateContent replaces the message a button click came from, clearing the
// buttons
func updateContent(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Errorf("Error updating interaction message: %v", err)
	}
}

// stakeOption extracts the required amount option from a game command
func stakeOption(i *discordgo.InteractionCreate) int64 {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "amount" {
			return opt.IntValue()
		}
	}
	return 0
}

// stringOption extracts a named string option from a game command
func stringOption(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}
