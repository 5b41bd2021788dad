package port

import (
	"context"
	"upscaler/internal/core/domain"
)

type TextSender interface {
	// SendMessageReply sends a text reply to the given message.
	SendMessageReply(ctx context.Context, message *domain.Message, text string) error
}

type DocumentSender interface {
	// SendDocumentReply sends a file as a document in reply to the given message.
	SendDocumentReply(ctx context.Context, message *domain.Message, fileName string, data []byte) error
}

type FileFetcher interface {
	// FetchFile downloads the content of a chat attachment by its file ID.
	FetchFile(ctx context.Context, fileID string) ([]byte, error)
}
