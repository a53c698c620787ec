package games

import (
	"context"
	"fmt"
	"strings"
	"time"

	"croupier/bot/common"
	"croupier/domain/games"
	"croupier/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// slotSpinFrameDelay paces the reel animation frames
const slotSpinFrameDelay = 400 * time.Millisecond

// slotsState carries the multiplier chain between spins. Consecutive wins pay
// 1.5x, a spin after a loss pays 2.0x.
type slotsState struct {
	nextMultiplier float64
}

func (f *Feature) handleSlotsSpin(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	stake := stakeOption(i)
	message, components, ok := f.spinOnce(ctx, s, i, discordID, stake, games.SlotBaseMultiplier)
	if !ok {
		return
	}

	f.animateSpin(s, i, discordgo.InteractionResponseChannelMessageWithSource, message, components)
}

func (f *Feature) handleSlotsAgain(s *discordgo.Session, i *discordgo.InteractionCreate, sessionID string) {
	ctx := context.Background()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	session, err := f.sessions.Take(discordID, gameSlots)
	if err != nil {
		common.RespondWithDomainError(s, i, err)
		return
	}
	if session.ID.String() != sessionID {
		f.sessions.Replace(session)
		common.RespondWithError(s, i, "This isn't your machine.")
		return
	}

	state := session.State.(*slotsState)
	message, components, ok := f.spinOnce(ctx, s, i, discordID, session.Stake, state.nextMultiplier)
	if !ok {
		// Put the session back so the chain survives a failed re-spin
		f.sessions.Replace(session)
		return
	}

	f.animateSpin(s, i, discordgo.InteractionResponseUpdateMessage, message, components)
}

// spinOnce places the bet, spins at the given multiplier, settles, and stores
// a fresh session carrying the next spin's multiplier. On failure it answers
// the interaction itself and reports the spin as incomplete.
func (f *Feature) spinOnce(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, discordID int64, stake int64, multiplier float64) (string, []discordgo.MessageComponent, bool) {
	reservation, err := f.placeBet(ctx, discordID, gameSlots, stake)
	if err != nil {
		common.RespondWithDomainError(s, i, err)
		return "", nil, false
	}

	spin := games.SpinSlots(f.rng, multiplier)

	outcome := games.OutcomeLoss
	if spin.Won {
		outcome = games.OutcomeWin
	}

	settled, refunded, _ := f.settleOrRefund(ctx, reservation, outcome, spin.Multiplier, map[string]any{
		"reels":           strings.Join(spin.Reels[:], ""),
		"next_multiplier": spin.NextMultiplier,
	})
	if settled == nil {
		respondSettleFailure(s, i, refunded)
		return "", nil, false
	}

	session := services.NewGameSession(discordID, gameSlots, stake, &slotsState{
		nextMultiplier: spin.NextMultiplier,
	})
	f.sessions.Replace(session)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎰 %s %s %s\n", spin.Reels[0], spin.Reels[1], spin.Reels[2]))
	sb.WriteString(common.FormatGameResult(spin.Won, stake, settled.Payout, settled.NewBalance))
	sb.WriteString(fmt.Sprintf("\nNext spin pays **%.1fx**.", spin.NextMultiplier))

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Spin again",
					Style:    discordgo.PrimaryButton,
					CustomID: "slots_again_" + session.ID.String(),
				},
			},
		},
	}
	return sb.String(), components, true
}

// animateSpin plays two frames of spinning reels before editing in the final
// result. The outcome is already settled when this runs, the frames are
// cosmetic.
func (f *Feature) animateSpin(s *discordgo.Session, i *discordgo.InteractionCreate, responseType discordgo.InteractionResponseType, message string, components []discordgo.MessageComponent) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: responseType,
		Data: &discordgo.InteractionResponseData{
			Content:    spinFrameLine(f.rng),
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Errorf("Error responding to slots command: %v", err)
		return
	}

	for frame := 0; frame < 2; frame++ {
		time.Sleep(slotSpinFrameDelay)
		content := spinFrameLine(f.rng)
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
			log.Errorf("Error editing slots animation frame: %v", err)
			break
		}
	}

	time.Sleep(slotSpinFrameDelay)
	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content:    &message,
		Components: &components,
	})
	if err != nil {
		log.Errorf("Error editing slots result: %v", err)
	}
}

func spinFrameLine(rng games.Rand) string {
	frame := games.SpinFrame(rng)
	return fmt.Sprintf("🎰 %s %s %s", frame[0], frame[1], frame[2])
}
