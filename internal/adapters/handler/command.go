package handler

import (
	"context"
	"time"
	"upscaler/internal/core/domain"
	"upscaler/internal/core/domain/commands"
	"upscaler/internal/core/port"
	"upscaler/internal/core/service"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

const photoMIMEType = "image/jpeg"

type CommandHandler struct {
	commandRegistry port.CommandRegistry
	authorizer      service.Authorizer
	timeout         time.Duration
	maxFileBytes    int64
}

func NewCommandHandler(commandRegistry port.CommandRegistry, authorizer service.Authorizer, timeout time.Duration,
	maxFileBytes int64) *CommandHandler {
	return &CommandHandler{
		commandRegistry: commandRegistry,
		authorizer:      authorizer,
		timeout:         timeout,
		maxFileBytes:    maxFileBytes,
	}
}

// Handle is registered as the bot's default handler and dispatches every update to a command.
func (h *CommandHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil {
		return
	}

	message := h.toMessage(update.Message)

	cmd := domain.ParseCommand(message.Text)
	if message.FileID != "" {
		cmd = commands.ImageCommand
	}

	log.Debug().Str("command", cmd).Int64("chatId", message.ChatID).Msg("received update")

	commandHandler, err := h.commandRegistry.Get(cmd)
	if err != nil {
		log.Debug().Str("command", cmd).Msg("no handler for command")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.timeout)
		defer cancel()

		if h.authorizer != nil && !h.authorizer.IsAuthorized(ctx, message) {
			log.Info().Int64("chatId", message.ChatID).Msg("unauthorized chat")
			return
		}

		if err := commandHandler.Respond(ctx, message); err != nil {
			log.Err(err).Str("command", cmd).Msg("failed to respond to command")
		}
	}()
}

func (h *CommandHandler) toMessage(m *models.Message) *domain.Message {
	message := &domain.Message{
		ID:     m.ID,
		ChatID: m.Chat.ID,
		Text:   m.Text,
	}

	if m.From != nil {
		message.Username = getUserNameOrFirstName(m.From)
	}

	if m.Caption != "" {
		message.Text = m.Caption
	}

	switch {
	case m.Document != nil:
		message.FileID = m.Document.FileID
		message.FileName = m.Document.FileName
		message.MIMEType = m.Document.MimeType
		message.FileBytes = int64(m.Document.FileSize)
	case len(m.Photo) > 0:
		photo := findLargestImage(m.Photo, h.maxFileBytes)
		message.FileID = photo.FileID
		message.MIMEType = photoMIMEType
		message.FileBytes = int64(photo.FileSize)
	}

	return message
}

// findLargestImage picks the biggest photo size that fits the limit, or the smallest one if none does.
func findLargestImage(photos []models.PhotoSize, maxBytes int64) models.PhotoSize {
	best := -1
	for i, photo := range photos {
		if maxBytes > 0 && int64(photo.FileSize) > maxBytes {
			continue
		}
		if best < 0 || photo.FileSize > photos[best].FileSize {
			best = i
		}
	}

	if best < 0 {
		return photos[0]
	}

	return photos[best]
}

func getUserNameOrFirstName(user *models.User) string {
	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
