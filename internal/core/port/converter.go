package port

import (
	"context"
	"upscaler/internal/core/domain"
)

type Converter interface {
	// Convert validates an upload as an image and encodes it as a data URL together with its base64 payload and
	// MIME type.
	Convert(ctx context.Context, upload domain.Upload) (domain.OriginalImage, error)
}
