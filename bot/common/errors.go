package common

import (
	"errors"
	"fmt"

	"croupier/domain"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// UserMessageForError maps domain sentinel errors to user-facing replies.
// Anything unmatched gets a generic message; the real error is for the logs.
func UserMessageForError(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotRegistered):
		return "You need to register first. Use /register to accept the terms."
	case errors.Is(err, domain.ErrInvalidBet):
		return "Invalid bet amount."
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "You don't have enough coins for that."
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "Quantity must be a positive number."
	case errors.Is(err, domain.ErrInvalidAmount):
		return "Amount must be a positive number."
	case errors.Is(err, domain.ErrPermissionDenied):
		return "You don't have permission to do that."
	case errors.Is(err, domain.ErrNoActiveSession):
		return "No active game found. Start a new one."
	case errors.Is(err, domain.ErrAlreadyDecided):
		return "This request has already been decided."
	default:
		return "Something went wrong. Please try again later."
	}
}

// RespondWithError sends an error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// RespondWithDomainError logs err and replies with its mapped user message
func RespondWithDomainError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	log.WithError(err).Warn("Command failed")
	RespondWithError(s, i, UserMessageForError(err))
}

// FollowUpWithError sends an error message as a follow-up to a deferred interaction
func FollowUpWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("❌ %s", message),
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up error message: %v", err)
	}
}
