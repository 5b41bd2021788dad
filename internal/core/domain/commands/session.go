package commands

import (
	"fmt"
	"upscaler/internal/core/domain"
)

// ImageCommand is the registry key used for messages carrying an image attachment.
const ImageCommand = "/image"

func sessionKey(message *domain.Message) string {
	return fmt.Sprintf("tg:%d", message.ChatID)
}
