//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"sync"

	"chat-server/domain"

	"github.com/samber/lo"
)

type IMessageRepository interface {
	StoreMessage(message domain.Message)
	SearchByKeyword(query string) []string
	SearchByUser(name string) []string
	Count() int
}

// MessageRepository is the in-memory, append-only chat log. Entries are
// never removed; unbounded growth is an accepted property of the
// design. The mutex is held per operation, never across a sequence of
// operations, so a long search cannot starve an append.
type MessageRepository struct {
	mu       sync.Mutex
	messages []domain.Message
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

// StoreMessage appends to the end of the log. Insertion order is the
// log order, independent of timestamp collisions.
func (m *MessageRepository) StoreMessage(message domain.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
}

// SearchByKeyword returns every message whose content or sender
// contains the query, rendered, in insertion order. Matching is a
// case-sensitive substring over the snapshot at call time.
func (m *MessageRepository) SearchByKeyword(query string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return render(lo.Filter(m.messages, func(msg domain.Message, _ int) bool {
		return msg.MatchesKeyword(query)
	}))
}

// SearchByUser returns every message whose sender contains the name,
// rendered, in insertion order.
func (m *MessageRepository) SearchByUser(name string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return render(lo.Filter(m.messages, func(msg domain.Message, _ int) bool {
		return msg.MatchesSender(name)
	}))
}

// Count returns the current log length. Used by telemetry.
func (m *MessageRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

func render(messages []domain.Message) []string {
	return lo.Map(messages, func(msg domain.Message, _ int) string {
		return msg.Render()
	})
}
