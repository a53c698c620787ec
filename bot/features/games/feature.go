package games

import (
	"strings"

	"croupier/application"
	"croupier/domain/games"
	"croupier/domain/services"

	"github.com/bwmarrin/discordgo"
)

// Game identifiers used for session keys and stake metadata
const (
	gameDice      = "dice"
	gameCoinflip  = "coinflip"
	gameRPS       = "rps"
	gameBlackjack = "blackjack"
	gameSlots     = "slots"
	gameHighLow   = "highlow"
)

// Feature handles all casino game commands and their button interactions
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	sessions   *services.SessionStore
	rng        games.Rand
}

// New creates a new games feature instance
func New(uowFactory application.UnitOfWorkFactory) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		sessions:   services.NewSessionStore(),
		rng:        games.DefaultRand,
	}
}

// HandleCommand routes a game slash command to its handler
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case gameDice:
		f.handleDice(s, i)
	case gameCoinflip:
		f.handleCoinflip(s, i)
	case gameRPS:
		f.handleRPS(s, i)
	case gameBlackjack:
		f.handleBlackjackDeal(s, i)
	case gameSlots:
		f.handleSlotsSpin(s, i)
	case gameHighLow:
		f.handleHighLowStart(s, i)
	}
}

// HandleInteraction routes game button clicks by custom ID prefix
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, "bj_hit_"):
		f.handleBlackjackHit(s, i, strings.TrimPrefix(customID, "bj_hit_"))
	case strings.HasPrefix(customID, "bj_stand_"):
		f.handleBlackjackStand(s, i, strings.TrimPrefix(customID, "bj_stand_"))
	case strings.HasPrefix(customID, "hl_higher_"):
		f.handleHighLowGuess(s, i, strings.TrimPrefix(customID, "hl_higher_"), games.GuessHigher)
	case strings.HasPrefix(customID, "hl_lower_"):
		f.handleHighLowGuess(s, i, strings.TrimPrefix(customID, "hl_lower_"), games.GuessLower)
	case strings.HasPrefix(customID, "slots_again_"):
		f.handleSlotsAgain(s, i, strings.TrimPrefix(customID, "slots_again_"))
	}
}
