package games

import (
	"context"
	"fmt"

	"croupier/bot/common"
	"croupier/domain/games"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleCoinflip(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	call, err := games.ParseCoinSide(stringOption(i, "call"))
	if err != nil {
		common.RespondWithError(s, i, "Pick heads or tails.")
		return
	}

	stake := stakeOption(i)
	reservation, err := f.placeBet(ctx, discordID, gameCoinflip, stake)
	if err != nil {
		common.RespondWithDomainError(s, i, err)
		return
	}

	flip := games.FlipCoin(f.rng, call)

	settled, refunded, _ := f.settleOrRefund(ctx, reservation, flip.Outcome, flip.Multiplier, map[string]any{
		"call":   string(flip.Call),
		"landed": string(flip.Landed),
	})
	if settled == nil {
		respondSettleFailure(s, i, refunded)
		return
	}

	header := fmt.Sprintf("🪙 You called **%s**, the coin landed **%s**.", flip.Call, flip.Landed)
	message := header + "\n" + common.FormatGameResult(flip.Outcome == games.OutcomeWin, stake, settled.Payout, settled.NewBalance)

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: message},
	})
	if err != nil {
		log.Errorf("Error responding to coinflip command: %v", err)
	}
}
