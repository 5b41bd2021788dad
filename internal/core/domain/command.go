package domain

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

type CommandResponder interface {
	Respond(ctx context.Context, message *Message) error
	GetCommand() string
}

type CommandRegistry struct {
	commands map[string]CommandResponder
}

func (c *CommandRegistry) Register(handler CommandResponder) {
	if c.commands == nil {
		c.commands = make(map[string]CommandResponder)
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	c.commands[handler.GetCommand()] = handler
}

func (c *CommandRegistry) Get(command string) (CommandResponder, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	if c.commands == nil {
		return nil, errors.New("can't fetch commands, registry not initialized")
	}

	handler, ok := c.commands[command]
	if !ok {
		return nil, errors.New("command not found")
	}

	return handler, nil
}

// ListCommands returns the registered command identifiers in lexical order.
func (c *CommandRegistry) ListCommands() []string {
	keys := make([]string, 0, len(c.commands))
	for k := range c.commands {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

func ParseCommandArgs(args string) string {
	command := strings.Fields(args)
	if len(command) < 2 {
		return ""
	}
	return strings.Join(command[1:], " ")
}

// ParseCommand returns the first word, with any @botname suffix removed.
func ParseCommand(args string) string {
	command := strings.Fields(args)
	if len(command) == 0 {
		return ""
	}
	name, _, _ := strings.Cut(command[0], "@")
	return name
}
