package register

import (
	"context"
	"fmt"

	"croupier/bot/common"
	"croupier/config"
	"croupier/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleCommand shows the terms prompt with an accept button
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	cfg := config.Get()

	content := "Before you can play, you need to accept the casino rules."
	if cfg.TermsURL != "" {
		content = fmt.Sprintf("Before you can play, read the rules here: %s", cfg.TermsURL)
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.Button{
							Label:    "I accept the rules",
							Style:    discordgo.SuccessButton,
							CustomID: "register_accept",
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.Errorf("Error responding to register command: %v", err)
	}
}

func (f *Feature) handleAccept(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
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
	if err := ledger.Register(ctx, discordID); err != nil {
		common.RespondWithDomainError(s, i, err)
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing registration: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    "✅ You're registered. Good luck at the tables!",
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Errorf("Error responding to register accept: %v", err)
	}
}
