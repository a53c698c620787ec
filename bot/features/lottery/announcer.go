package lottery

import (
	"context"
	"fmt"

	"croupier/bot/common"
	"croupier/config"
	"croupier/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// AnnounceDrawResult posts the weekly draw outcome to the configured lottery
// channel. It satisfies application.LotteryAnnouncer.
func (f *Feature) AnnounceDrawResult(ctx context.Context, result *interfaces.LotteryDrawResult) error {
	channelID := config.Get().LotteryChannelID
	if channelID == "" {
		log.Warn("No lottery channel configured, skipping draw announcement")
		return nil
	}

	if _, err := f.session.ChannelMessageSendEmbed(channelID, drawResultEmbed(result)); err != nil {
		return fmt.Errorf("failed to announce lottery draw: %w", err)
	}

	if result.Draw.HasWinner() {
		f.notifyWinner(*result.Draw.WinnerDiscordID, result.Draw.Prize)
	}
	return nil
}

// notifyWinner sends the winner a direct message. DMs can be disabled per
// user, so failure is logged and the public announcement stands alone.
func (f *Feature) notifyWinner(discordID, prize int64) {
	channel, err := f.session.UserChannelCreate(common.FormatUserID(discordID))
	if err != nil {
		log.WithError(err).WithField("discordID", discordID).Warn("Could not open DM channel for lottery winner")
		return
	}

	message := fmt.Sprintf("🎉 You won this week's lottery! **%s coins** have been added to your balance.",
		common.FormatBalance(prize))
	if _, err := f.session.ChannelMessageSend(channel.ID, message); err != nil {
		log.WithError(err).WithField("discordID", discordID).Warn("Could not DM lottery winner")
	}
}
