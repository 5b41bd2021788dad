package commands

import (
	"context"
	"fmt"
	"upscaler/internal/adapters/file"
	"upscaler/internal/core/domain"
	"upscaler/internal/core/port"
	"upscaler/internal/core/service"

	"github.com/rs/zerolog/log"
)

const (
	msgNoImage     = "send an image first"
	msgBusy        = "an upscale is already running"
	msgAlreadyDone = "this image is already upscaled, send a new image or /reset"
	msgDiscarded   = "the upscale was cancelled"
)

type UpscaleHandler struct {
	sessions       *service.Sessions
	textSender     port.TextSender
	documentSender port.DocumentSender
	command        string
}

func NewUpscaleHandler(sessions *service.Sessions, textSender port.TextSender, documentSender port.DocumentSender,
	command string) *UpscaleHandler {
	return &UpscaleHandler{sessions: sessions, textSender: textSender, documentSender: documentSender,
		command: command}
}

func (h *UpscaleHandler) GetCommand() string {
	return h.command
}

func (h *UpscaleHandler) Respond(ctx context.Context, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", h.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	w := h.sessions.Get(sessionKey(message))
	before := w.Snapshot()

	if args := domain.ParseCommandArgs(message.Text); args != "" {
		factor, err := domain.ParseFactor(args)
		if err != nil {
			return h.textSender.SendMessageReply(ctx, message, "usage: /upscale, /upscale 2 or /upscale 4")
		}
		_ = w.SetFactor(factor)
		before.Factor = factor
	}

	if reason := refusal(before); reason != "" {
		return h.textSender.SendMessageReply(ctx, message, reason)
	}

	if err := h.textSender.SendMessageReply(ctx, message, fmt.Sprintf("Upscaling %s...", before.Factor)); err != nil {
		l.Warn().Err(err).Msg("failed to send progress message")
	}

	if !w.Upscale(ctx) {
		reason := refusal(w.Snapshot())
		if reason == "" {
			reason = msgBusy
		}
		return h.textSender.SendMessageReply(ctx, message, reason)
	}

	state := w.Snapshot()
	if state.Generation != before.Generation {
		return h.textSender.SendMessageReply(ctx, message, msgDiscarded)
	}

	if state.Phase != domain.Succeeded {
		return h.textSender.SendMessageReply(ctx, message, state.Error)
	}

	png, err := file.EncodePNG(state.UpscaledURL)
	if err != nil {
		l.Error().Err(err).Msg("failed to encode result")
		return h.textSender.SendMessageReply(ctx, message, domain.MsgUpscaleFailed)
	}

	name := file.DownloadName(state.Original.Name, state.ResultFactor)
	return h.documentSender.SendDocumentReply(ctx, message, name, png)
}

func refusal(state domain.State) string {
	switch {
	case state.Phase.Busy():
		return msgBusy
	case state.Original == nil:
		return msgNoImage
	case state.Phase == domain.Succeeded:
		return msgAlreadyDone
	case !state.CanUpscale():
		return msgBusy
	default:
		return ""
	}
}
