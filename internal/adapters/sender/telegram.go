package sender

import (
	"bytes"
	"context"
	"fmt"
	"upscaler/internal/adapters/file"
	"upscaler/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// TelegramBot is the subset of *bot.Bot used by the sender.
type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendDocument(ctx context.Context, params *bot.SendDocumentParams) (*models.Message, error)
	GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

type TelegramSender struct {
	bot      TelegramBot
	maxBytes int64
}

func NewTelegramSender(bot TelegramBot, maxBytes int64) *TelegramSender {
	return &TelegramSender{bot: bot, maxBytes: maxBytes}
}

func (s *TelegramSender) SendMessageReply(ctx context.Context, message *domain.Message, text string) error {
	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          message.ChatID,
		Text:            text,
		ReplyParameters: replyTo(message),
	})
	if err != nil {
		log.Error().Err(err).Int64("chatId", message.ChatID).Msg("failed to send message reply")
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

func (s *TelegramSender) SendDocumentReply(ctx context.Context, message *domain.Message, fileName string,
	data []byte) error {
	_, err := s.bot.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:          message.ChatID,
		Document:        &models.InputFileUpload{Filename: fileName, Data: bytes.NewReader(data)},
		ReplyParameters: replyTo(message),
	})
	if err != nil {
		log.Error().Err(err).Int64("chatId", message.ChatID).Msg("failed to send document response")
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

func (s *TelegramSender) FetchFile(ctx context.Context, fileID string) ([]byte, error) {
	f, err := s.bot.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("error getting file from telegram api: %w", err)
	}

	return file.DownloadFile(ctx, s.bot.FileDownloadLink(f), s.maxBytes)
}

func replyTo(message *domain.Message) *models.ReplyParameters {
	if message.ID == 0 {
		return nil
	}

	return &models.ReplyParameters{
		MessageID: message.ID,
		ChatID:    message.ChatID,
	}
}
