package lottery

import (
	"context"
	"fmt"

	"croupier/bot/common"
	"croupier/config"
	"croupier/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleBuy(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	quantity := 1
	for _, opt := range sub.Options {
		if opt.Name == "quantity" {
			quantity = int(opt.IntValue())
		}
	}

	var purchase *interfaces.LotteryPurchaseResult
	err = f.withLotteryService(ctx, func(svc interfaces.LotteryService) error {
		var err error
		purchase, err = svc.BuyTickets(ctx, discordID, quantity)
		return err
	})
	if err != nil {
		common.RespondWithDomainError(s, i, err)
		return
	}

	message := fmt.Sprintf("🎟️ Bought **%d** ticket(s) for **%s coins**. New balance: **%s coins**. Good luck!",
		purchase.Quantity,
		common.FormatBalance(purchase.TotalCost),
		common.FormatBalance(purchase.NewBalance))

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to lotto buy: %v", err)
	}
}

func (f *Feature) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var status *interfaces.LotteryStatus
	err := f.withLotteryService(ctx, func(svc interfaces.LotteryService) error {
		var err error
		status, err = svc.Status(ctx)
		return err
	})
	if err != nil {
		log.Errorf("Error fetching lottery status: %v", err)
		common.RespondWithError(s, i, "Unable to fetch lottery status. Please try again.")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{statusEmbed(s, i.GuildID, status, config.Get().LotteryTicketPrice)},
		},
	})
	if err != nil {
		log.Errorf("Error responding to lotto status: %v", err)
	}
}
