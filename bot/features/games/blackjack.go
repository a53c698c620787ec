package games

import (
	"context"
	"fmt"
	"strings"

	"croupier/bot/common"
	"croupier/domain/games"
	"croupier/domain/interfaces"
	"croupier/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// blackjackState is the session payload for an in-flight blackjack hand
type blackjackState struct {
	reservation *interfaces.Reservation
	hand        *games.Blackjack
}

func (f *Feature) handleBlackjackDeal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if _, exists := f.sessions.Get(discordID, gameBlackjack); exists {
		common.RespondWithError(s, i, "Finish your current blackjack hand first.")
		return
	}

	stake := stakeOption(i)
	reservation, err := f.placeBet(ctx, discordID, gameBlackjack, stake)
	if err != nil {
		common.RespondWithDomainError(s, i, err)
		return
	}

	hand := games.NewBlackjack(f.rng)

	// A natural resolves immediately, no player decision to make. There is no
	// session to retry from, so a failed settlement voids the hand with a
	// refund.
	if hand.HasNatural() {
		outcome, multiplier := hand.Resolve()
		settled, refunded, _ := f.settleOrRefund(ctx, reservation, outcome, multiplier, blackjackMetadata(hand))
		if settled == nil {
			respondSettleFailure(s, i, refunded)
			return
		}

		message := formatBlackjackHand(hand, stake, true) + "\n🂡 **Blackjack!** " +
			common.FormatGameResult(true, stake, settled.Payout, settled.NewBalance)
		respondContent(s, i, message)
		return
	}

	session := services.NewGameSession(discordID, gameBlackjack, stake, &blackjackState{
		reservation: reservation,
		hand:        hand,
	})
	if err := f.sessions.Put(session); err != nil {
		log.Errorf("Error storing blackjack session for user %d: %v", discordID, err)
		if _, refundErr := f.refund(ctx, reservation); refundErr != nil {
			log.Errorf("Error refunding blackjack stake for user %d: %v", discordID, refundErr)
		}
		common.RespondWithError(s, i, "Finish your current blackjack hand first.")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    formatBlackjackHand(hand, stake, false),
			Components: blackjackButtons(session.ID.String()),
		},
	})
	if err != nil {
		log.Errorf("Error responding to blackjack command: %v", err)
	}
}

func (f *Feature) handleBlackjackHit(s *discordgo.Session, i *discordgo.InteractionCreate, sessionID string) {
	ctx := context.Background()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	session, err := f.sessions.Take(discordID, gameBlackjack)
	if err != nil {
		common.RespondWithDomainError(s, i, err)
		return
	}
	if session.ID.String() != sessionID {
		f.sessions.Replace(session)
		common.RespondWithError(s, i, "This isn't your hand.")
		return
	}

	// A terminal hand means a previous settlement failed and the session was
	// put back, so skip the move and settle again
	state := session.State.(*blackjackState)
	if !state.hand.IsTerminal() {
		if err := state.hand.Hit(f.rng); err != nil {
			f.sessions.Replace(session)
			log.Errorf("Error hitting blackjack hand for user %d: %v", discordID, err)
			common.RespondWithError(s, i, "Unable to process request. Please try again.")
			return
		}
	}

	if state.hand.IsTerminal() {
		f.finishBlackjack(ctx, s, i, session, state)
		return
	}

	f.sessions.Replace(session)
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    formatBlackjackHand(state.hand, session.Stake, false),
			Components: blackjackButtons(session.ID.String()),
		},
	})
	if err != nil {
		log.Errorf("Error updating blackjack hand: %v", err)
	}
}

func (f *Feature) handleBlackjackStand(s *discordgo.Session, i *discordgo.InteractionCreate, sessionID string) {
	ctx := context.Background()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	session, err := f.sessions.Take(discordID, gameBlackjack)
	if err != nil {
		common.RespondWithDomainError(s, i, err)
		return
	}
	if session.ID.String() != sessionID {
		f.sessions.Replace(session)
		common.RespondWithError(s, i, "This isn't your hand.")
		return
	}

	// A terminal hand means a previous settlement failed and the session was
	// put back, so skip the move and settle again
	state := session.State.(*blackjackState)
	if !state.hand.IsTerminal() {
		if err := state.hand.Stand(f.rng); err != nil {
			f.sessions.Replace(session)
			log.Errorf("Error standing blackjack hand for user %d: %v", discordID, err)
			common.RespondWithError(s, i, "Unable to process request. Please try again.")
			return
		}
	}

	f.finishBlackjack(ctx, s, i, session, state)
}

// finishBlackjack settles a finished hand and reports the result. Resolve
// reads the hand without mutating it, so when the settlement fails the
// session is put back and the next button press settles the same result.
func (f *Feature) finishBlackjack(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, session *services.GameSession, state *blackjackState) {
	outcome, multiplier := state.hand.Resolve()
	settled, err := f.settle(ctx, state.reservation, outcome, multiplier, blackjackMetadata(state.hand))
	if err != nil {
		log.Errorf("Error settling blackjack hand for user %d: %v", session.DiscordID, err)
		f.sessions.Replace(session)
		common.RespondWithError(s, i, "Unable to settle your bet. Use the buttons to try again.")
		return
	}

	var result string
	switch {
	case state.hand.State == games.BlackjackPlayerBust:
		result = "💥 **Bust!** " + common.FormatGameResult(false, session.Stake, settled.Payout, settled.NewBalance)
	case outcome == games.OutcomePush:
		result = common.FormatPushResult(session.Stake, settled.NewBalance)
	case outcome == games.OutcomeLoss:
		result = common.FormatGameResult(false, session.Stake, settled.Payout, settled.NewBalance)
	default:
		result = common.FormatGameResult(true, session.Stake, settled.Payout, settled.NewBalance)
	}

	message := formatBlackjackHand(state.hand, session.Stake, true) + "\n" + result
	updateContent(s, i, message)
}

func blackjackMetadata(hand *games.Blackjack) map[string]any {
	return map[string]any{
		"player_hand":  hand.PlayerHand,
		"dealer_hand":  hand.DealerHand,
		"player_total": hand.PlayerTotal(),
		"dealer_total": hand.DealerTotal(),
	}
}

func formatBlackjackHand(hand *games.Blackjack, stake int64, revealDealer bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🃏 **Blackjack** — stake %s\n", common.FormatBalance(stake)))
	sb.WriteString(fmt.Sprintf("Your hand: %s (%d)\n", formatCards(hand.PlayerHand), hand.PlayerTotal()))
	if revealDealer {
		sb.WriteString(fmt.Sprintf("Dealer hand: %s (%d)", formatCards(hand.DealerHand), hand.DealerTotal()))
	} else {
		sb.WriteString(fmt.Sprintf("Dealer shows: **%d** 🂠", hand.DealerHand[0]))
	}
	return sb.String()
}

func formatCards(hand []int) string {
	parts := make([]string, len(hand))
	for idx, card := range hand {
		parts[idx] = fmt.Sprintf("**%d**", card)
	}
	return strings.Join(parts, " ")
}

func blackjackButtons(sessionID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Hit",
					Style:    discordgo.PrimaryButton,
					CustomID: "bj_hit_" + sessionID,
				},
				discordgo.Button{
					Label:    "Stand",
					Style:    discordgo.SecondaryButton,
					CustomID: "bj_stand_" + sessionID,
				},
			},
		},
	}
}
