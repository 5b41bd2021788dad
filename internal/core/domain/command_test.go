package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResponder struct {
	command string
}

func (m *MockResponder) Respond(_ context.Context, _ *Message) error {
	return nil
}

func (m *MockResponder) GetCommand() string {
	return m.command
}

func TestRegister(t *testing.T) {
	cr := &CommandRegistry{}
	mr := &MockResponder{command: "/test"}

	cr.Register(mr)
	assert.Equal(t, 1, len(cr.commands))
}

func TestGetNotRegistered(t *testing.T) {
	cr := &CommandRegistry{}

	_, err := cr.Get("test")
	assert.EqualError(t, err, "can't fetch commands, registry not initialized")
}

func TestGetCommandNotFound(t *testing.T) {
	cr := &CommandRegistry{}
	cr.Register(&MockResponder{command: "/test"})

	_, err := cr.Get("/foo")
	assert.EqualError(t, err, "command not found")
}

func TestGetCommandFound(t *testing.T) {
	cr := &CommandRegistry{}
	cr.Register(&MockResponder{command: "/test"})

	cmd, err := cr.Get("/test")
	require.NoError(t, err)
	assert.Equal(t, "/test", cmd.GetCommand())
}

func TestListCommands(t *testing.T) {
	cr := &CommandRegistry{}
	cr.Register(&MockResponder{command: "/reset"})
	cr.Register(&MockResponder{command: "/factor"})

	assert.Equal(t, []string{"/factor", "/reset"}, cr.ListCommands())
}

func TestParseCommandArgs(t *testing.T) {
	testCases := []struct {
		description string
		args        string
		want        string
	}{
		{
			description: "should discard first word",
			args:        "/factor 4",
			want:        "4",
		},
		{
			description: "should only discard first word",
			args:        "/factor 4 2",
			want:        "4 2",
		},
		{
			description: "empty on no args",
			args:        "/factor",
			want:        "",
		},
		{
			description: "empty on no input",
			args:        "",
			want:        "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.want, ParseCommandArgs(testCase.args))
		})
	}
}

func TestParseCommand(t *testing.T) {
	testCases := []struct {
		description string
		args        string
		want        string
	}{
		{
			description: "should return first word",
			args:        "/upscale",
			want:        "/upscale",
		},
		{
			description: "should discard following words",
			args:        "/factor 4",
			want:        "/factor",
		},
		{
			description: "should strip bot mention",
			args:        "/reset@upscaler_bot",
			want:        "/reset",
		},
		{
			description: "empty on no input",
			args:        "",
			want:        "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.want, ParseCommand(testCase.args))
		})
	}
}
