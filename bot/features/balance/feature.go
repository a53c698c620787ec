package balance

import (
	"croupier/application"
)

// Feature handles the balance and transaction history commands
type Feature struct {
	uowFactory application.UnitOfWorkFactory
}

// New creates a new balance feature instance
func New(uowFactory application.UnitOfWorkFactory) *Feature {
	return &Feature{uowFactory: uowFactory}
}
