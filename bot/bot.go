package bot

import (
	"fmt"

	"croupier/application"
	"croupier/bot/features/admin"
	"croupier/bot/features/balance"
	"croupier/bot/features/escrow"
	gamesfeature "croupier/bot/features/games"
	"croupier/bot/features/lottery"
	"croupier/bot/features/register"
	"croupier/config"

	"github.com/bwmarrin/discordgo"
)

// Bot wires the Discord session to the feature handlers
type Bot struct {
	config  *config.Config
	session *discordgo.Session

	registerFeature *register.Feature
	balanceFeature  *balance.Feature
	gamesFeature    *gamesfeature.Feature
	lotteryFeature  *lottery.Feature
	escrowFeature   *escrow.Feature
	adminFeature    *admin.Feature
}

// New creates the bot, opens the Discord connection and registers the slash
// commands
func New(cfg *config.Config, uowFactory application.UnitOfWorkFactory) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAllWithoutPrivileged

	bot := &Bot{
		config:          cfg,
		session:         dg,
		registerFeature: register.New(uowFactory),
		balanceFeature:  balance.New(uowFactory),
		gamesFeature:    gamesfeature.New(uowFactory),
		lotteryFeature:  lottery.New(uowFactory, dg),
		escrowFeature:   escrow.New(uowFactory, dg),
		adminFeature:    admin.New(uowFactory),
	}

	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleComponentInteractions)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// LotteryAnnouncer returns the draw announcer backed by this bot's session
func (b *Bot) LotteryAnnouncer() application.LotteryAnnouncer {
	return b.lotteryFeature
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "register":
		b.registerFeature.HandleCommand(s, i)
	case "balance":
		b.balanceFeature.HandleBalance(s, i)
	case "transactions":
		b.balanceFeature.HandleTransactions(s, i)
	case "dice", "coinflip", "rps", "blackjack", "slots", "highlow":
		b.gamesFeature.HandleCommand(s, i)
	case "lotto":
		b.lotteryFeature.HandleCommand(s, i)
	case "deposit", "withdraw", "pending":
		b.escrowFeature.HandleCommand(s, i)
	case "adjust_balance":
		b.adminFeature.HandleAdjustBalance(s, i)
	}
}

func (b *Bot) handleComponentInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	b.registerFeature.HandleInteraction(s, i)
	b.gamesFeature.HandleInteraction(s, i)
	b.escrowFeature.HandleInteraction(s, i)
}
