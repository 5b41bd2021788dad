package service

import (
	"context"
	"errors"
	"fmt"
	"upscaler/internal/core/domain"
	"upscaler/internal/core/port"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Authorizer interface {
	IsAuthorized(ctx context.Context, message *domain.Message) bool
}

// ChatAuthorizer restricts chat access to a configured allowlist. An empty allowlist admits every chat.
type ChatAuthorizer struct {
	allowlist []int64
	admin     string
	sender    port.TextSender
}

func NewAuthorizer(sender port.TextSender) (*ChatAuthorizer, error) {
	var list []int64

	err := viper.UnmarshalKey("telegram.allowed_chat_ids", &list)
	if err != nil {
		return nil, errors.New("failed to load allowed chat IDs")
	}

	return &ChatAuthorizer{
		allowlist: list,
		admin:     viper.GetString("telegram.admin_username"),
		sender:    sender,
	}, nil
}

const forbidden = "You are not authorized to use this bot. Please contact %s with this ID to get access: %d"

func (a *ChatAuthorizer) IsAuthorized(ctx context.Context, message *domain.Message) bool {
	if len(a.allowlist) == 0 {
		return true
	}

	for _, id := range a.allowlist {
		if id == message.ChatID {
			return true
		}
	}

	admin := "the bot admin"
	if a.admin != "" {
		admin = "@" + a.admin
	}

	err := a.sender.SendMessageReply(ctx, message, fmt.Sprintf(forbidden, admin, message.ChatID))
	if err != nil {
		log.Err(err).Msg("failed to send unauthorized warning")
	}

	return false
}
