package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func stakeOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "amount",
		Description: "Amount of coins to stake",
		Required:    true,
		MinValue:    float64Ptr(1),
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "register",
			Description: "Accept the casino rules and start playing",
		},
		{
			Name:        "balance",
			Description: "Check your current balance",
		},
		{
			Name:        "transactions",
			Description: "Show your recent transactions",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "Number of transactions to show (default 10)",
					Required:    false,
					MinValue:    float64Ptr(1),
					MaxValue:    50,
				},
			},
		},
		{
			Name:        "dice",
			Description: "Roll a die against the house; matching rolls pay 2x",
			Options:     []*discordgo.ApplicationCommandOption{stakeOption()},
		},
		{
			Name:        "coinflip",
			Description: "Call a coinflip; a correct call pays 2x",
			Options: []*discordgo.ApplicationCommandOption{
				stakeOption(),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "call",
					Description: "Your call",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Heads", Value: "heads"},
						{Name: "Tails", Value: "tails"},
					},
				},
			},
		},
		{
			Name:        "rps",
			Description: "Rock-paper-scissors against the house; a win pays 2x",
			Options: []*discordgo.ApplicationCommandOption{
				stakeOption(),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "move",
					Description: "Your throw",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Rock", Value: "rock"},
						{Name: "Paper", Value: "paper"},
						{Name: "Scissors", Value: "scissors"},
					},
				},
			},
		},
		{
			Name:        "blackjack",
			Description: "Play a hand of blackjack; a natural pays 2.5x",
			Options:     []*discordgo.ApplicationCommandOption{stakeOption()},
		},
		{
			Name:        "slots",
			Description: "Spin the slot machine; three matching symbols win",
			Options:     []*discordgo.ApplicationCommandOption{stakeOption()},
		},
		{
			Name:        "highlow",
			Description: "Guess whether the next card is higher or lower",
			Options:     []*discordgo.ApplicationCommandOption{stakeOption()},
		},
		{
			Name:        "lotto",
			Description: "Weekly lottery",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "buy",
					Description: "Buy lottery tickets",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "quantity",
							Description: "Number of tickets to buy",
							Required:    true,
							MinValue:    float64Ptr(1),
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show the current pot and participants",
				},
			},
		},
		{
			Name:        "deposit",
			Description: "Request a deposit (staff reviewed)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of coins to deposit",
					Required:    true,
					MinValue:    float64Ptr(1),
				},
				{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "proof",
					Description: "Screenshot of the payment",
					Required:    false,
				},
			},
		},
		{
			Name:        "withdraw",
			Description: "Request a withdrawal (staff reviewed)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of coins to withdraw",
					Required:    true,
					MinValue:    float64Ptr(1),
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "ign",
					Description: "In-game name to pay out to",
					Required:    false,
				},
			},
		},
		{
			Name:        "pending",
			Description: "List pending deposit and withdrawal requests (staff)",
		},
		{
			Name:        "adjust_balance",
			Description: "Set a user's balance to an exact value (staff)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to adjust",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "balance",
					Description: "The new balance",
					Required:    true,
					MinValue:    float64Ptr(0),
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
