package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected Command
	}{
		{
			name:     "exit literal",
			line:     "exit",
			expected: Command{Kind: KindExit},
		},
		{
			name:     "search by keyword",
			line:     "/search hello world",
			expected: Command{Kind: KindSearchKeyword, Argument: "hello world"},
		},
		{
			name:     "search by user",
			line:     "/user ali",
			expected: Command{Kind: KindSearchUser, Argument: "ali"},
		},
		{
			name:     "plain chat",
			line:     "hello everyone",
			expected: Command{Kind: KindChat, Argument: "hello everyone"},
		},
		{
			name:     "empty line is chat",
			line:     "",
			expected: Command{Kind: KindChat, Argument: ""},
		},
		{
			// Legacy behavior: a command missing its argument is not an
			// error, it propagates as a plain message.
			name:     "bare search is chat",
			line:     "/search",
			expected: Command{Kind: KindChat, Argument: "/search"},
		},
		{
			name:     "unknown slash command is chat",
			line:     "/quit now",
			expected: Command{Kind: KindChat, Argument: "/quit now"},
		},
		{
			// Case-sensitive protocol: only the exact literal leaves.
			name:     "uppercase exit is chat",
			line:     "EXIT",
			expected: Command{Kind: KindChat, Argument: "EXIT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ParseCommand(tt.line))
		})
	}
}

func TestMessage_Render(t *testing.T) {
	req := require.New(t)
	at := time.Date(2024, 5, 12, 9, 30, 5, 0, time.Local)

	msg := NewMessage("alice", "hello world", at)

	req.Equal("[2024-05-12 09:30:05] alice: hello world", msg.Render())
	req.NotEqual(NewMessage("alice", "hello world", at).ID, msg.ID)
}

func TestMessage_Matches(t *testing.T) {
	req := require.New(t)
	msg := NewMessage("world-traveler", "hello there", time.Now())

	req.True(msg.MatchesKeyword("hello"))
	req.True(msg.MatchesKeyword("traveler"))
	req.False(msg.MatchesKeyword("Hello"))
	req.True(msg.MatchesSender("world"))
	req.False(msg.MatchesSender("hello"))
}
