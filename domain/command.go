package domain

import "strings"

// CommandKind classifies one line of client input.
type CommandKind int

const (
	// KindChat is the default: the line is a plain chat message.
	KindChat CommandKind = iota
	// KindExit closes the session.
	KindExit
	// KindSearchKeyword queries history by content-or-sender substring.
	KindSearchKeyword
	// KindSearchUser queries history by sender substring.
	KindSearchUser
)

const (
	exitLiteral         = "exit"
	searchKeywordPrefix = "/search "
	searchUserPrefix    = "/user "
)

// Command is the parsed form of a client line. Argument carries the
// query for search kinds and the raw line for chat.
type Command struct {
	Kind     CommandKind
	Argument string
}

// ParseCommand classifies a single client line. A slash command missing
// its argument (a bare "/search" or "/user") is not recognized and
// falls through as a plain chat message, as does an empty line.
func ParseCommand(line string) Command {
	switch {
	case line == exitLiteral:
		return Command{Kind: KindExit}
	case strings.HasPrefix(line, searchKeywordPrefix):
		return Command{Kind: KindSearchKeyword, Argument: strings.TrimPrefix(line, searchKeywordPrefix)}
	case strings.HasPrefix(line, searchUserPrefix):
		return Command{Kind: KindSearchUser, Argument: strings.TrimPrefix(line, searchUserPrefix)}
	default:
		return Command{Kind: KindChat, Argument: line}
	}
}
