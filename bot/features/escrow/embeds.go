package escrow

import (
	"fmt"

	"croupier/bot/common"
	"croupier/domain/entities"

	"github.com/bwmarrin/discordgo"
)

const (
	colorPending  = 0x3498DB
	colorApproved = 0x2ECC71
	colorRejected = 0xE74C3C
)

func requestEmbed(s *discordgo.Session, guildID string, request *entities.EscrowRequest) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Escrow: %s request", request.Kind),
		Color: colorPending,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "User",
				Value:  common.GetUserMention(request.DiscordID),
				Inline: true,
			},
			{
				Name:   "Amount",
				Value:  fmt.Sprintf("%s coins", common.FormatBalance(request.Amount)),
				Inline: true,
			},
			{
				Name:   "Submitted",
				Value:  common.FormatDiscordTimestamp(request.CreatedAt, "R"),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: request.Reference.String(),
		},
	}

	if ign := request.InGameName(); ign != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "IGN",
			Value:  ign,
			Inline: true,
		})
	}

	if proof := request.ProofURL(); proof != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: proof}
	}

	return embed
}

func decidedEmbed(s *discordgo.Session, guildID string, request *entities.EscrowRequest, resultLine string) *discordgo.MessageEmbed {
	embed := requestEmbed(s, guildID, request)
	if request.Status == entities.EscrowStatusApproved {
		embed.Color = colorApproved
	} else {
		embed.Color = colorRejected
	}
	embed.Description = resultLine
	return embed
}

func decisionLine(s *discordgo.Session, guildID string, request *entities.EscrowRequest, shortFunds bool) string {
	decider := "staff"
	if request.DecidedBy != nil {
		decider = common.GetDisplayName(s, guildID, common.FormatUserID(*request.DecidedBy))
	}

	switch {
	case shortFunds:
		return fmt.Sprintf("❌ Rejected automatically: the user no longer has %s coins.", common.FormatBalance(request.Amount))
	case request.Status == entities.EscrowStatusApproved:
		return fmt.Sprintf("✅ Approved by %s.", decider)
	default:
		return fmt.Sprintf("❌ Rejected by %s.", decider)
	}
}

func decisionButtons(reference string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Approve",
					Style:    discordgo.SuccessButton,
					CustomID: "escrow_approve_" + reference,
				},
				discordgo.Button{
					Label:    "Reject",
					Style:    discordgo.DangerButton,
					CustomID: "escrow_reject_" + reference,
				},
			},
		},
	}
}
