package games

import (
	"context"
	"fmt"

	"croupier/bot/common"
	"croupier/domain/games"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

var diceFaces = map[int]string{
	1: "⚀", 2: "⚁", 3: "⚂", 4: "⚃", 5: "⚄", 6: "⚅",
}

func (f *Feature) handleDice(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	stake := stakeOption(i)
	reservation, err := f.placeBet(ctx, discordID, gameDice, stake)
	if err != nil {
		common.RespondWithDomainError(s, i, err)
		return
	}

	roll := games.RollDice(f.rng)

	settled, refunded, _ := f.settleOrRefund(ctx, reservation, roll.Outcome, roll.Multiplier, map[string]any{
		"player_roll": roll.PlayerRoll,
		"bot_roll":    roll.BotRoll,
	})
	if settled == nil {
		respondSettleFailure(s, i, refunded)
		return
	}

	header := fmt.Sprintf("🎲 You rolled %s **%d**, the house rolled %s **%d**.",
		diceFaces[roll.PlayerRoll], roll.PlayerRoll, diceFaces[roll.BotRoll], roll.BotRoll)
	message := header + "\n" + common.FormatGameResult(roll.Outcome == games.OutcomeWin, stake, settled.Payout, settled.NewBalance)

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: message},
	})
	if err != nil {
		log.Errorf("Error responding to dice command: %v", err)
	}
}
