package escrow

import (
	"strings"

	"croupier/application"
	"croupier/config"
	"croupier/domain/interfaces"
	"croupier/domain/services"

	"github.com/bwmarrin/discordgo"
)

// Feature handles deposit and withdrawal requests and the staff review queue
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	session    *discordgo.Session
}

// New creates a new escrow feature instance
func New(uowFactory application.UnitOfWorkFactory, session *discordgo.Session) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		session:    session,
	}
}

// HandleCommand routes the deposit and withdraw commands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "deposit":
		f.handleSubmit(s, i, "deposit")
	case "withdraw":
		f.handleSubmit(s, i, "withdraw")
	case "pending":
		f.handlePending(s, i)
	}
}

// HandleInteraction routes the staff approve/reject buttons
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, "escrow_approve_"):
		f.handleDecision(s, i, strings.TrimPrefix(customID, "escrow_approve_"), true)
	case strings.HasPrefix(customID, "escrow_reject_"):
		f.handleDecision(s, i, strings.TrimPrefix(customID, "escrow_reject_"), false)
	}
}

// staffPermissionChecker allows the configured staff IDs to decide requests
func staffPermissionChecker() interfaces.PermissionChecker {
	staffIDs := config.Get().StaffDiscordIDs
	return func(approverID int64) bool {
		for _, id := range staffIDs {
			if id == approverID {
				return true
			}
		}
		return false
	}
}

// escrowService builds an escrow service bound to a unit of work's
// repositories. The permission checker additionally honors guild admins via
// extraChecker.
func escrowService(uow application.UnitOfWork, extraChecker interfaces.PermissionChecker) interfaces.EscrowService {
	ledger := services.NewLedgerService(uow.AccountRepository(), uow.TransactionRepository(), uow.EventBus())
	staffCheck := staffPermissionChecker()
	checker := interfaces.PermissionChecker(func(approverID int64) bool {
		if staffCheck(approverID) {
			return true
		}
		return extraChecker != nil && extraChecker(approverID)
	})
	return services.NewEscrowService(
		uow.AccountRepository(),
		uow.EscrowRepository(),
		ledger,
		uow.EventBus(),
		checker,
	)
}
