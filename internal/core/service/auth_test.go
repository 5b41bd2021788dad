package service

import (
	"context"
	"errors"
	"testing"
	"upscaler/internal/core/domain"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTextSender struct {
	callCount   int
	sendReplies []string
	sendError   error
}

func (m *mockTextSender) SendMessageReply(_ context.Context, _ *domain.Message, text string) error {
	m.callCount++
	m.sendReplies = append(m.sendReplies, text)
	return m.sendError
}

func TestNewAuthorizer(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		expected []int64
	}{
		{
			name: "loads allowed chat IDs",
			setup: func() {
				viper.Set("telegram.allowed_chat_ids", []int64{1, 2, 3})
			},
			expected: []int64{1, 2, 3},
		},
		{
			name: "empty list is fine",
			setup: func() {
				viper.Set("telegram.allowed_chat_ids", []int64{})
			},
			expected: []int64{},
		},
		{
			name:     "missing key",
			setup:    func() {},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			tt.setup()

			auth, err := NewAuthorizer(&mockTextSender{})
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.expected, auth.allowlist)
		})
	}
}

func TestIsAuthorized(t *testing.T) {
	tests := []struct {
		name        string
		allowlist   []int64
		admin       string
		chatID      int64
		sendErr     error
		want        bool
		wantReplies []string
	}{
		{
			name:      "empty allowlist admits everyone",
			allowlist: nil,
			chatID:    99,
			want:      true,
		},
		{
			name:      "listed chat",
			allowlist: []int64{1, 2},
			chatID:    2,
			want:      true,
		},
		{
			name:      "unlisted chat is refused",
			allowlist: []int64{1, 2},
			admin:     "alice",
			chatID:    5,
			want:      false,
			wantReplies: []string{
				"You are not authorized to use this bot. Please contact @alice with this ID to get access: 5",
			},
		},
		{
			name:      "refusal still reported when reply fails",
			allowlist: []int64{1},
			chatID:    7,
			sendErr:   errors.New("send failed"),
			want:      false,
			wantReplies: []string{
				"You are not authorized to use this bot. Please contact the bot admin with this ID to get access: 7",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &mockTextSender{sendError: tt.sendErr}
			auth := &ChatAuthorizer{allowlist: tt.allowlist, admin: tt.admin, sender: sender}

			got := auth.IsAuthorized(t.Context(), &domain.Message{ChatID: tt.chatID})
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantReplies, sender.sendReplies)
		})
	}
}
