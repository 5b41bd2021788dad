package file

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"upscaler/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read(_ []byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestConverterConvert(t *testing.T) {
	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10}

	tests := []struct {
		name     string
		upload   domain.Upload
		wantMIME string
		wantData []byte
		wantErr  error
	}{
		{
			name:     "jpeg",
			upload:   domain.Upload{Name: "photo.jpg", ContentType: "image/jpeg", Reader: strings.NewReader(string(jpeg))},
			wantMIME: "image/jpeg",
			wantData: jpeg,
		},
		{
			name:     "content type with parameters",
			upload:   domain.Upload{Name: "icon.svg", ContentType: "image/svg+xml; charset=utf-8", Reader: strings.NewReader("<svg/>")},
			wantMIME: "image/svg+xml",
			wantData: []byte("<svg/>"),
		},
		{
			name:     "empty image",
			upload:   domain.Upload{Name: "empty.png", ContentType: "image/png", Reader: strings.NewReader("")},
			wantMIME: "image/png",
			wantData: []byte{},
		},
		{
			name:    "text file",
			upload:  domain.Upload{Name: "notes.txt", ContentType: "text/plain", Reader: strings.NewReader("hello")},
			wantErr: domain.ErrNotAnImage,
		},
		{
			name:    "missing content type",
			upload:  domain.Upload{Name: "blob", Reader: strings.NewReader("hello")},
			wantErr: domain.ErrNotAnImage,
		},
		{
			name:    "read failure",
			upload:  domain.Upload{Name: "photo.png", ContentType: "image/png", Reader: failingReader{}},
			wantErr: domain.ErrReadFailed,
		},
		{
			name:    "no reader",
			upload:  domain.Upload{Name: "photo.png", ContentType: "image/png"},
			wantErr: domain.ErrReadFailed,
		},
		{
			name:    "too large",
			upload:  domain.Upload{Name: "big.png", ContentType: "image/png", Reader: strings.NewReader(strings.Repeat("a", 33))},
			wantErr: domain.ErrReadFailed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewConverter(32)

			got, err := c.Convert(t.Context(), tc.upload)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, got.DataURL)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tc.upload.Name, got.Name)
			assert.Equal(t, tc.wantMIME, got.MIMEType)
			assert.Equal(t, "data:"+got.MIMEType+";base64,"+got.Base64, got.DataURL)

			decoded, err := base64.StdEncoding.DecodeString(got.Base64)
			require.NoError(t, err)
			assert.Equal(t, tc.wantData, decoded)

			mime, payload, err := ParseDataURL(got.DataURL)
			require.NoError(t, err)
			assert.Equal(t, got.MIMEType, mime)
			assert.Equal(t, got.Base64, payload)
		})
	}
}

func TestConverterCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := NewConverter(0).Convert(ctx, domain.Upload{ContentType: "image/png", Reader: strings.NewReader("x")})
	require.ErrorIs(t, err, domain.ErrReadFailed)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMediaType(t *testing.T) {
	assert.Equal(t, "image/png", MediaType(" Image/PNG "))
	assert.Equal(t, "image/svg+xml", MediaType("image/svg+xml; charset=utf-8"))
	assert.Equal(t, "", MediaType(""))
}
