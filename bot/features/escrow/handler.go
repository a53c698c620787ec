package escrow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"croupier/bot/common"
	"croupier/config"
	"croupier/domain"
	"croupier/domain/entities"
	"croupier/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleSubmit(s *discordgo.Session, i *discordgo.InteractionCreate, command string) {
	ctx := context.Background()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	kind := entities.EscrowKindDeposit
	if command == "withdraw" {
		kind = entities.EscrowKindWithdrawal
	}

	data := i.ApplicationCommandData()
	var amount int64
	metadata := map[string]any{}
	for _, opt := range data.Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "ign":
			metadata["ign"] = opt.StringValue()
		case "proof":
			if attachment, ok := data.Resolved.Attachments[opt.Value.(string)]; ok {
				metadata["proof_url"] = attachment.URL
			}
		}
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	defer uow.Rollback()

	request, err := escrowService(uow, nil).Submit(ctx, discordID, kind, amount, metadata)
	if err != nil {
		common.RespondWithDomainError(s, i, err)
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing escrow request: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	f.postReviewMessage(s, i.GuildID, request)

	message := fmt.Sprintf("📨 Your %s request for **%s coins** has been queued for staff review.",
		request.Kind, common.FormatBalance(request.Amount))
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to %s command: %v", command, err)
	}
}

// postReviewMessage drops the request embed with decision buttons into the
// staff channel. Failure to post is logged only; the request is already
// queued and reachable through the pending list.
func (f *Feature) postReviewMessage(s *discordgo.Session, guildID string, request *entities.EscrowRequest) {
	channelID := config.Get().StaffChannelID
	if channelID == "" {
		log.Warn("No staff channel configured, escrow request queued without review message")
		return
	}

	_, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{requestEmbed(s, guildID, request)},
		Components: decisionButtons(request.Reference.String()),
	})
	if err != nil {
		log.Errorf("Error posting escrow review message for %s: %v", request.Reference, err)
	}
}

func (f *Feature) handleDecision(s *discordgo.Session, i *discordgo.InteractionCreate, referenceStr string, approve bool) {
	ctx := context.Background()

	approverID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	reference, err := uuid.Parse(referenceStr)
	if err != nil {
		log.Errorf("Error parsing escrow reference %s: %v", referenceStr, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	// Guild admins may decide even when not on the staff list
	adminCheck := interfaces.PermissionChecker(func(id int64) bool {
		return common.IsUserAdmin(s, i.GuildID, common.FormatUserID(id))
	})

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	defer uow.Rollback()

	request, err := escrowService(uow, adminCheck).Decide(ctx, reference, approverID, approve)
	if err != nil && !errors.Is(err, domain.ErrInsufficientFunds) {
		if errors.Is(err, domain.ErrAlreadyDecided) {
			common.RespondWithError(s, i, fmt.Sprintf("This request was already %s.", request.Status))
			return
		}
		common.RespondWithDomainError(s, i, err)
		return
	}
	shortFunds := errors.Is(err, domain.ErrInsufficientFunds)

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing escrow decision: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	resultLine := decisionLine(s, i.GuildID, request, shortFunds)
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{decidedEmbed(s, i.GuildID, request, resultLine)},
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Errorf("Error updating escrow review message: %v", err)
	}
}

func (f *Feature) handlePending(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	defer uow.Rollback()

	pending, err := escrowService(uow, nil).ListPending(ctx, 25)
	if err != nil {
		log.Errorf("Error listing pending escrow requests: %v", err)
		common.RespondWithError(s, i, "Unable to fetch pending requests. Please try again.")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if len(pending) == 0 {
		common.RespondWithError(s, i, "No pending requests.")
		return
	}

	var sb strings.Builder
	sb.WriteString("**Pending escrow requests:**\n")
	for _, request := range pending {
		sb.WriteString(fmt.Sprintf("%s · %s · %s · **%s coins** · `%s`\n",
			common.FormatDiscordTimestamp(request.CreatedAt, "R"),
			common.GetUserMention(request.DiscordID),
			request.Kind,
			common.FormatBalance(request.Amount),
			request.Reference))
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: sb.String(),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to pending command: %v", err)
	}
}
