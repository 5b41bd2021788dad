package port

import (
	"upscaler/internal/core/domain"
)

type CommandRegistry interface {
	// Register adds a new command handler to the command registry.
	Register(handler domain.CommandResponder)
	// Get retrieves a registered command based on its string identifier or returns an error if not found.
	Get(command string) (domain.CommandResponder, error)
	// ListCommands returns a list of all command identifiers currently registered in the command registry.
	ListCommands() []string
}
