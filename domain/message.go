// Package domain contains core concepts of the chat system.
// This file defines Message events and related rules.
// Messages are immutable and validated by the domain.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the sortable wall-clock format stamped on every
// message and membership announcement.
const TimestampLayout = "2006-01-02 15:04:05"

// Message represents an immutable chat event. The sender name is
// denormalized at creation time, so a later rename or departure never
// invalidates history.
type Message struct {
	ID        uuid.UUID // unique identifier
	Sender    string
	Content   string
	Timestamp string
}

// NewMessage stamps content with the sender's name and the current
// local wall-clock time.
func NewMessage(sender, content string, at time.Time) Message {
	return Message{
		ID:        uuid.New(),
		Sender:    sender,
		Content:   content,
		Timestamp: at.Format(TimestampLayout),
	}
}

// Render produces the client-visible form of the message.
func (m Message) Render() string {
	return fmt.Sprintf("[%s] %s: %s", m.Timestamp, m.Sender, m.Content)
}

// MatchesKeyword reports whether the query occurs in the content or in
// the sender name. Matching is case-sensitive.
func (m Message) MatchesKeyword(query string) bool {
	return strings.Contains(m.Content, query) || strings.Contains(m.Sender, query)
}

// MatchesSender reports whether the name occurs in the sender name.
// Substring, not exact, so a prefix or suffix search works.
func (m Message) MatchesSender(name string) bool {
	return strings.Contains(m.Sender, name)
}
