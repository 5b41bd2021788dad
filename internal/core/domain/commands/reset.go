package commands

import (
	"context"
	"upscaler/internal/core/domain"
	"upscaler/internal/core/port"
	"upscaler/internal/core/service"
)

type ResetHandler struct {
	sessions   *service.Sessions
	textSender port.TextSender
	command    string
}

func NewResetHandler(sessions *service.Sessions, textSender port.TextSender, command string) *ResetHandler {
	return &ResetHandler{sessions: sessions, textSender: textSender, command: command}
}

func (h *ResetHandler) GetCommand() string {
	return h.command
}

func (h *ResetHandler) Respond(ctx context.Context, message *domain.Message) error {
	h.sessions.Get(sessionKey(message)).Reset()

	return h.textSender.SendMessageReply(ctx, message, "Starting over. Send a new image.")
}
