package file

import (
	"context"
	"fmt"
	"strings"
	"upscaler/internal/core/domain"

	"github.com/rs/zerolog/log"
)

const DefaultMaxUploadBytes = 20 << 20

// Converter turns uploads into data URL encoded images.
type Converter struct {
	maxBytes int64
}

func NewConverter(maxBytes int64) *Converter {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}

	return &Converter{maxBytes: maxBytes}
}

func (c *Converter) Convert(ctx context.Context, upload domain.Upload) (domain.OriginalImage, error) {
	contentType := MediaType(upload.ContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return domain.OriginalImage{}, fmt.Errorf("%w: %q", domain.ErrNotAnImage, upload.ContentType)
	}

	if err := ctx.Err(); err != nil {
		return domain.OriginalImage{}, fmt.Errorf("%w: %w", domain.ErrReadFailed, err)
	}

	if upload.Reader == nil {
		return domain.OriginalImage{}, fmt.Errorf("%w: no content", domain.ErrReadFailed)
	}

	data, err := readLimited(upload.Reader, c.maxBytes)
	if err != nil {
		return domain.OriginalImage{}, fmt.Errorf("%w: %w", domain.ErrReadFailed, err)
	}

	dataURL := EncodeDataURL(contentType, data)
	mimeType, payload, err := ParseDataURL(dataURL)
	if err != nil {
		return domain.OriginalImage{}, fmt.Errorf("%w: %w", domain.ErrReadFailed, err)
	}

	log.Debug().Str("file", upload.Name).Str("mimeType", mimeType).Int("bytes", len(data)).Msg("converted upload")

	return domain.OriginalImage{
		Name:     upload.Name,
		DataURL:  dataURL,
		Base64:   payload,
		MIMEType: mimeType,
	}, nil
}

// MediaType strips parameters and surrounding whitespace from a Content-Type value.
func MediaType(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mediaType))
}
