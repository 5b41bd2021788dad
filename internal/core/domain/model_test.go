package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFactor(t *testing.T) {
	tests := []struct {
		input   string
		want    Factor
		wantErr bool
	}{
		{input: "2", want: Factor2},
		{input: "4", want: Factor4},
		{input: "4x", want: Factor4},
		{input: " 2X ", want: Factor2},
		{input: "3", wantErr: true},
		{input: "8", wantErr: true},
		{input: "", wantErr: true},
		{input: "two", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseFactor(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidFactor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewFactor(t *testing.T) {
	for _, n := range []int{-2, 0, 1, 3, 5, 16} {
		_, err := NewFactor(n)
		assert.ErrorIs(t, err, ErrInvalidFactor)
	}

	f, err := NewFactor(4)
	require.NoError(t, err)
	assert.Equal(t, "4x", f.String())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "no_image", NoImage.String())
	assert.Equal(t, "upscaling", Upscaling.String())
	assert.Equal(t, "unknown", Phase(42).String())
	assert.True(t, Loading.Busy())
	assert.False(t, Failed.Busy())
}

func TestStateGuards(t *testing.T) {
	orig := &OriginalImage{DataURL: "data:image/png;base64,AA=="}

	assert.False(t, State{Phase: NoImage}.CanUpscale())
	assert.True(t, State{Phase: Ready, Original: orig}.CanUpscale())
	assert.True(t, State{Phase: Failed, Original: orig}.CanUpscale())
	assert.False(t, State{Phase: Failed}.CanUpscale())
	assert.False(t, State{Phase: Succeeded, Original: orig}.CanUpscale())

	assert.True(t, State{Phase: Succeeded, UpscaledURL: "data:x"}.CanDownload())
	assert.False(t, State{Phase: Ready}.CanDownload())
}
