package commands

import (
	"context"
	"strings"
	"upscaler/internal/core/domain"
	"upscaler/internal/core/port"
)

type HelpHandler struct {
	registry   port.CommandRegistry
	textSender port.TextSender
	command    string
}

func NewHelpHandler(registry port.CommandRegistry, textSender port.TextSender, command string) *HelpHandler {
	return &HelpHandler{registry: registry, textSender: textSender, command: command}
}

func (h *HelpHandler) GetCommand() string {
	return h.command
}

func (h *HelpHandler) Respond(ctx context.Context, message *domain.Message) error {
	sb := &strings.Builder{}
	sb.WriteString("Send an image as photo or file, pick a factor and upscale it with Gemini.\n\nCommands:\n")

	for _, cmd := range h.registry.ListCommands() {
		if cmd == ImageCommand {
			continue
		}
		sb.WriteString(cmd)
		sb.WriteString("\n")
	}

	return h.textSender.SendMessageReply(ctx, message, sb.String())
}
