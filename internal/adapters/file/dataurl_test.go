package file

import (
	"testing"
	"upscaler/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURL(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantMIME    string
		wantPayload string
		wantErr     bool
	}{
		{
			name:        "png",
			input:       "data:image/png;base64,Zm9v",
			wantMIME:    "image/png",
			wantPayload: "Zm9v",
		},
		{
			name:        "empty payload",
			input:       "data:image/jpeg;base64,",
			wantMIME:    "image/jpeg",
			wantPayload: "",
		},
		{
			name:    "missing prefix",
			input:   "image/png;base64,Zm9v",
			wantErr: true,
		},
		{
			name:    "missing separator",
			input:   "data:image/png,Zm9v",
			wantErr: true,
		},
		{
			name:    "missing comma",
			input:   "data:image/png;base64",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mime, payload, err := ParseDataURL(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidDataURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantMIME, mime)
			assert.Equal(t, tc.wantPayload, payload)
		})
	}
}

func TestDecodeDataURL(t *testing.T) {
	mime, data, err := DecodeDataURL("data:image/png;base64,Zm9v")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, []byte("foo"), data)

	_, _, err = DecodeDataURL("data:image/png;base64,!!!")
	require.ErrorIs(t, err, domain.ErrInvalidDataURL)
}

func TestEncodeDataURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,Zm9v", EncodeDataURL("image/png", []byte("foo")))
}
