package games

import (
	"context"
	"fmt"

	"croupier/bot/common"
	"croupier/domain/games"
	"croupier/domain/interfaces"
	"croupier/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// highLowState is the session payload for an undecided high-low round
type highLowState struct {
	reservation *interfaces.Reservation
	reference   string
}

func (f *Feature) handleHighLowStart(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if _, exists := f.sessions.Get(discordID, gameHighLow); exists {
		common.RespondWithError(s, i, "Finish your current high-low round first.")
		return
	}

	stake := stakeOption(i)
	reservation, err := f.placeBet(ctx, discordID, gameHighLow, stake)
	if err != nil {
		common.RespondWithDomainError(s, i, err)
		return
	}

	reference := games.DrawHighLowCard(f.rng)

	session := services.NewGameSession(discordID, gameHighLow, stake, &highLowState{
		reservation: reservation,
		reference:   reference,
	})
	if err := f.sessions.Put(session); err != nil {
		log.Errorf("Error storing high-low session for user %d: %v", discordID, err)
		if _, refundErr := f.refund(ctx, reservation); refundErr != nil {
			log.Errorf("Error refunding high-low stake for user %d: %v", discordID, refundErr)
		}
		common.RespondWithError(s, i, "Finish your current high-low round first.")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    formatHighLowPrompt(reference, stake),
			Components: highLowButtons(session.ID.String()),
		},
	})
	if err != nil {
		log.Errorf("Error responding to highlow command: %v", err)
	}
}

func (f *Feature) handleHighLowGuess(s *discordgo.Session, i *discordgo.InteractionCreate, sessionID string, guess games.Direction) {
	ctx := context.Background()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	session, err := f.sessions.Take(discordID, gameHighLow)
	if err != nil {
		common.RespondWithDomainError(s, i, err)
		return
	}
	if session.ID.String() != sessionID {
		f.sessions.Replace(session)
		common.RespondWithError(s, i, "This isn't your round.")
		return
	}

	state := session.State.(*highLowState)
	result := games.ResolveHighLow(f.rng, state.reference, guess)

	// A retry would redraw the next card, so a failed settlement voids the
	// round with a refund instead
	settled, refunded, _ := f.settleOrRefund(ctx, state.reservation, result.Outcome, result.Multiplier, map[string]any{
		"reference": result.Reference,
		"next_card": result.NextCard,
		"guess":     string(result.Guess),
	})
	if settled == nil {
		respondSettleFailure(s, i, refunded)
		return
	}

	header := fmt.Sprintf("🎴 Reference **%s**, you called **%s**, next card **%s**.",
		result.Reference, result.Guess, result.NextCard)

	var line string
	switch result.Outcome {
	case games.OutcomePush:
		line = common.FormatPushResult(session.Stake, settled.NewBalance)
	case games.OutcomeWin:
		line = common.FormatGameResult(true, session.Stake, settled.Payout, settled.NewBalance)
	default:
		line = common.FormatGameResult(false, session.Stake, settled.Payout, settled.NewBalance)
	}

	updateContent(s, i, header+"\n"+line)
}

func formatHighLowPrompt(reference string, stake int64) string {
	value := games.CardValue(reference)
	return fmt.Sprintf("🎴 **High-Low** — stake %s\nReference card: **%s**\nHigher pays **%.2fx**, lower pays **%.2fx**. Equal cards push.",
		common.FormatBalance(stake), reference,
		games.PayoutMultiplier(value, games.GuessHigher),
		games.PayoutMultiplier(value, games.GuessLower))
}

func highLowButtons(sessionID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Higher ⬆️",
					Style:    discordgo.PrimaryButton,
					CustomID: "hl_higher_" + sessionID,
				},
				discordgo.Button{
					Label:    "Lower ⬇️",
					Style:    discordgo.PrimaryButton,
					CustomID: "hl_lower_" + sessionID,
				},
			},
		},
	}
}
