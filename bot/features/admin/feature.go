package admin

import (
	"croupier/application"
)

// Feature handles staff-only balance administration commands
type Feature struct {
	uowFactory application.UnitOfWorkFactory
}

// New creates a new admin feature instance
func New(uowFactory application.UnitOfWorkFactory) *Feature {
	return &Feature{uowFactory: uowFactory}
}
