package file

import (
	"bytes"
	"fmt"
	"strings"
	"upscaler/internal/core/domain"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	_ "golang.org/x/image/webp"
)

const defaultDownloadName = "download.png"

// DownloadName derives the file name offered for an upscaled image, e.g. photo.jpg → photo_upscaled_2x.png.
func DownloadName(originalName string, factor domain.Factor) string {
	if originalName == "" {
		originalName = defaultDownloadName
	}

	base := ""
	if idx := strings.LastIndex(originalName, "."); idx > 0 {
		base = originalName[:idx]
	}
	if base == "" {
		base = originalName
	}

	return fmt.Sprintf("%s_upscaled_%dx.png", base, int(factor))
}

// EncodePNG decodes the image in a data URL and re-encodes it as PNG, keeping the alpha channel. If the payload
// cannot be decoded as an image the raw bytes are returned unchanged.
func EncodePNG(dataURL string) ([]byte, error) {
	mimeType, data, err := DecodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		log.Warn().Err(err).Str("mimeType", mimeType).Msg("could not decode image, falling back to raw bytes")
		return data, nil
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("error encoding png: %w", err)
	}

	return buf.Bytes(), nil
}
