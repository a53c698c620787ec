package register

import (
	"croupier/application"

	"github.com/bwmarrin/discordgo"
)

// Feature handles terms-of-service registration. Every wagering command is
// gated on a user having accepted the terms through this flow.
type Feature struct {
	uowFactory application.UnitOfWorkFactory
}

// New creates a new register feature instance
func New(uowFactory application.UnitOfWorkFactory) *Feature {
	return &Feature{uowFactory: uowFactory}
}

// HandleInteraction handles register button interactions
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	if i.MessageComponentData().CustomID == "register_accept" {
		f.handleAccept(s, i)
	}
}
