package file

import (
	"encoding/base64"
	"fmt"
	"strings"
	"upscaler/internal/core/domain"
)

// EncodeDataURL builds a data:<mime>;base64,<payload> string.
func EncodeDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURL splits a base64 data URL into its MIME type and payload. The MIME type is the text between the
// first ':' and the first ';', the payload everything after the first ','.
func ParseDataURL(dataURL string) (mimeType, payload string, err error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", "", fmt.Errorf("%w: missing data: prefix", domain.ErrInvalidDataURL)
	}

	colon := strings.Index(dataURL, ":")
	semi := strings.Index(dataURL, ";")
	comma := strings.Index(dataURL, ",")
	if semi < colon || comma < semi {
		return "", "", fmt.Errorf("%w: malformed header", domain.ErrInvalidDataURL)
	}

	return dataURL[colon+1 : semi], dataURL[comma+1:], nil
}

// DecodeDataURL returns the MIME type and the decoded bytes of a base64 data URL.
func DecodeDataURL(dataURL string) (string, []byte, error) {
	mimeType, payload, err := ParseDataURL(dataURL)
	if err != nil {
		return "", nil, err
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", domain.ErrInvalidDataURL, err)
	}

	return mimeType, data, nil
}
