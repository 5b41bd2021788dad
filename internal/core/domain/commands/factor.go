package commands

import (
	"context"
	"fmt"
	"upscaler/internal/core/domain"
	"upscaler/internal/core/port"
	"upscaler/internal/core/service"
)

const factorUsage = "usage: /factor 2 or /factor 4"

type FactorHandler struct {
	sessions   *service.Sessions
	textSender port.TextSender
	command    string
}

func NewFactorHandler(sessions *service.Sessions, textSender port.TextSender, command string) *FactorHandler {
	return &FactorHandler{sessions: sessions, textSender: textSender, command: command}
}

func (h *FactorHandler) GetCommand() string {
	return h.command
}

func (h *FactorHandler) Respond(ctx context.Context, message *domain.Message) error {
	w := h.sessions.Get(sessionKey(message))

	args := domain.ParseCommandArgs(message.Text)
	if args == "" {
		return h.textSender.SendMessageReply(ctx, message,
			fmt.Sprintf("Factor is %s. %s", w.Snapshot().Factor, factorUsage))
	}

	factor, err := domain.ParseFactor(args)
	if err != nil {
		return h.textSender.SendMessageReply(ctx, message, factorUsage)
	}

	if err := w.SetFactor(factor); err != nil {
		return h.textSender.SendMessageReply(ctx, message, factorUsage)
	}

	return h.textSender.SendMessageReply(ctx, message, fmt.Sprintf("Factor set to %s.", factor))
}
