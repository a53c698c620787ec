package lottery

import (
	"fmt"
	"strings"

	"croupier/bot/common"
	"croupier/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

func statusEmbed(s *discordgo.Session, guildID string, status *interfaces.LotteryStatus, ticketPrice int64) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🎟️ Weekly Lottery",
		Color: 0xF1C40F,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Tickets sold",
				Value:  fmt.Sprintf("%d", status.TicketCount),
				Inline: true,
			},
			{
				Name:   "Current prize",
				Value:  fmt.Sprintf("%s coins", common.FormatBalance(status.Prize)),
				Inline: true,
			},
			{
				Name:   "Ticket price",
				Value:  fmt.Sprintf("%s coins", common.FormatBalance(ticketPrice)),
				Inline: true,
			},
		},
	}

	if len(status.Participants) > 0 {
		var sb strings.Builder
		for idx, p := range status.Participants {
			if idx >= 10 {
				sb.WriteString(fmt.Sprintf("…and %d more", len(status.Participants)-idx))
				break
			}
			sb.WriteString(fmt.Sprintf("%s — %d ticket(s)\n",
				common.GetDisplayName(s, guildID, common.FormatUserID(p.DiscordID)), p.TicketCount))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Participants",
			Value: sb.String(),
		})
	}

	if status.LastDraw != nil {
		value := "No winner"
		if status.LastDraw.HasWinner() {
			value = fmt.Sprintf("%s won %s coins",
				common.GetUserMention(*status.LastDraw.WinnerDiscordID),
				common.FormatBalance(status.LastDraw.Prize))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Last draw (%s)", status.LastDraw.DrawnOn.Format("2006-01-02")),
			Value: value,
		})
	}

	return embed
}

func drawResultEmbed(draw *interfaces.LotteryDrawResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🎉 Lottery Draw Results",
		Color: 0xF1C40F,
	}

	if !draw.Draw.HasWinner() {
		embed.Description = "No tickets were sold this week. The pot starts fresh!"
		return embed
	}

	embed.Description = fmt.Sprintf("%s wins **%s coins** from %d ticket(s)! Congratulations!",
		common.GetUserMention(*draw.Draw.WinnerDiscordID),
		common.FormatBalance(draw.Draw.Prize),
		draw.Draw.TicketCount)
	return embed
}
