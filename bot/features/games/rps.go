package games

import (
	"context"
	"fmt"

	"croupier/bot/common"
	"croupier/domain/games"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

var rpsEmoji = map[games.Move]string{
	games.MoveRock:     "🪨",
	games.MovePaper:    "📄",
	games.MoveScissors: "✂️",
}

func (f *Feature) handleRPS(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	move, err := games.ParseMove(stringOption(i, "move"))
	if err != nil {
		common.RespondWithError(s, i, "Pick rock, paper or scissors.")
		return
	}

	stake := stakeOption(i)
	reservation, err := f.placeBet(ctx, discordID, gameRPS, stake)
	if err != nil {
		common.RespondWithDomainError(s, i, err)
		return
	}

	round := games.PlayRPS(f.rng, move)

	settled, refunded, _ := f.settleOrRefund(ctx, reservation, round.Outcome, round.Multiplier, map[string]any{
		"player_move": string(round.PlayerMove),
		"bot_move":    string(round.BotMove),
	})
	if settled == nil {
		respondSettleFailure(s, i, refunded)
		return
	}

	header := fmt.Sprintf("You threw %s **%s**, the house threw %s **%s**.",
		rpsEmoji[round.PlayerMove], round.PlayerMove, rpsEmoji[round.BotMove], round.BotMove)

	var message string
	if round.Outcome == games.OutcomePush {
		message = header + "\n" + common.FormatPushResult(stake, settled.NewBalance)
	} else {
		message = header + "\n" + common.FormatGameResult(round.Outcome == games.OutcomeWin, stake, settled.Payout, settled.NewBalance)
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: message},
	})
	if err != nil {
		log.Errorf("Error responding to rps command: %v", err)
	}
}
