package commands

import (
	"bytes"
	"context"
	"fmt"
	"upscaler/internal/core/domain"
	"upscaler/internal/core/port"
	"upscaler/internal/core/service"

	"github.com/rs/zerolog/log"
)

const defaultPhotoName = "photo.jpg"

type ImageHandler struct {
	sessions    *service.Sessions
	fileFetcher port.FileFetcher
	textSender  port.TextSender
	command     string
}

func NewImageHandler(sessions *service.Sessions, fileFetcher port.FileFetcher, textSender port.TextSender,
	command string) *ImageHandler {
	return &ImageHandler{sessions: sessions, fileFetcher: fileFetcher, textSender: textSender, command: command}
}

func (h *ImageHandler) GetCommand() string {
	return h.command
}

func (h *ImageHandler) Respond(ctx context.Context, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", h.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	if message.FileID == "" {
		return h.textSender.SendMessageReply(ctx, message, "send an image as photo or file to get started")
	}

	w := h.sessions.Get(sessionKey(message))

	data, err := h.fileFetcher.FetchFile(ctx, message.FileID)
	if err != nil {
		l.Error().Err(err).Msg("failed to fetch attachment")
		w.Reset()
		return h.textSender.SendMessageReply(ctx, message, domain.MsgLoadFailed)
	}

	name := message.FileName
	if name == "" {
		name = defaultPhotoName
	}

	_ = w.SelectImage(ctx, domain.Upload{
		Name:        name,
		ContentType: message.MIMEType,
		Reader:      bytes.NewReader(data),
	})

	state := w.Snapshot()
	if state.Phase != domain.Ready {
		return h.textSender.SendMessageReply(ctx, message, state.Error)
	}

	return h.textSender.SendMessageReply(ctx, message,
		fmt.Sprintf("Image loaded. Factor is %s, change it with /factor 2 or /factor 4, then send /upscale.",
			state.Factor))
}
