package commands

import (
	"context"
	"fmt"
	"strings"
	"upscaler/internal/core/domain"
	"upscaler/internal/core/port"
	"upscaler/internal/core/service"
)

type StatusHandler struct {
	sessions   *service.Sessions
	textSender port.TextSender
	command    string
}

func NewStatusHandler(sessions *service.Sessions, textSender port.TextSender, command string) *StatusHandler {
	return &StatusHandler{sessions: sessions, textSender: textSender, command: command}
}

func (h *StatusHandler) GetCommand() string {
	return h.command
}

func (h *StatusHandler) Respond(ctx context.Context, message *domain.Message) error {
	state := h.sessions.Get(sessionKey(message)).Snapshot()

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Status: %s\nFactor: %s", state.Phase, state.Factor)
	if state.Original != nil {
		fmt.Fprintf(sb, "\nImage: %s (%s)", state.Original.Name, state.Original.MIMEType)
	}
	if state.Error != "" {
		fmt.Fprintf(sb, "\nError: %s", state.Error)
	}

	return h.textSender.SendMessageReply(ctx, message, sb.String())
}
