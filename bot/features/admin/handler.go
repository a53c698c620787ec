package admin

import (
	"context"
	"fmt"

	"croupier/bot/common"
	"croupier/config"
	"croupier/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleAdjustBalance sets a user's balance to an exact value, recording the
// difference as an admin adjustment
func (f *Feature) HandleAdjustBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	approverID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if !f.isStaff(s, i, approverID) {
		common.RespondWithError(s, i, "You don't have permission to do that.")
		return
	}

	var targetUser *discordgo.User
	var newBalance int64
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			targetUser = opt.UserValue(s)
		case "balance":
			newBalance = opt.IntValue()
		}
	}

	if targetUser == nil {
		common.RespondWithError(s, i, "Pick a user to adjust.")
		return
	}

	targetID, err := common.ParseUserID(targetUser.ID)
	if err != nil {
		log.Errorf("Error parsing target Discord ID %s: %v", targetUser.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	defer uow.Rollback()

	ledger := services.NewLedgerService(uow.AccountRepository(), uow.TransactionRepository(), uow.EventBus())

	// Ensure the target account exists before overwriting its balance
	if _, err := ledger.GetOrCreateAccount(ctx, targetID); err != nil {
		common.RespondWithDomainError(s, i, err)
		return
	}

	tx, err := ledger.SetBalance(ctx, targetID, newBalance, map[string]any{
		"adjusted_by": approverID,
	})
	if err != nil {
		common.RespondWithDomainError(s, i, err)
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing balance adjustment: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	message := fmt.Sprintf("Balance for %s unchanged at **%s coins**.",
		common.GetUserMention(targetID), common.FormatBalance(newBalance))
	if tx != nil {
		message = fmt.Sprintf("Balance for %s set to **%s coins** (change: %+d).",
			common.GetUserMention(targetID), common.FormatBalance(newBalance), tx.ChangeAmount)
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to adjust_balance command: %v", err)
	}
}

func (f *Feature) isStaff(s *discordgo.Session, i *discordgo.InteractionCreate, discordID int64) bool {
	for _, id := range config.Get().StaffDiscordIDs {
		if id == discordID {
			return true
		}
	}
	return common.IsUserAdmin(s, i.GuildID, i.Member.User.ID)
}
