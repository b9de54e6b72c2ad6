package repositories

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"chat-server/domain"

	"github.com/stretchr/testify/require"
)

func seed(repo *MessageRepository, entries ...[2]string) {
	at := time.Date(2024, 5, 12, 9, 30, 0, 0, time.Local)
	for _, e := range entries {
		repo.StoreMessage(domain.NewMessage(e[0], e[1], at))
	}
}

func TestMessageRepository_SearchByKeyword_MatchesContentOrSender(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository()
	seed(repo,
		[2]string{"alice", "hello world"},
		[2]string{"bob", "goodbye"},
		[2]string{"world-traveler", "nothing to see"},
	)

	results := repo.SearchByKeyword("world")

	// Matches in content ("hello world") and in sender ("world-traveler"),
	// preserving insertion order.
	req.Len(results, 2)
	req.Equal("[2024-05-12 09:30:00] alice: hello world", results[0])
	req.Contains(results[1], "world-traveler")
}

func TestMessageRepository_SearchByKeyword_IsCaseSensitive(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository()
	seed(repo, [2]string{"alice", "Hello World"})

	req.Empty(repo.SearchByKeyword("world"))
	req.Len(repo.SearchByKeyword("World"), 1)
}

func TestMessageRepository_SearchByUser_SubstringOverSenderOnly(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository()
	seed(repo,
		[2]string{"alice", "talking about bob"},
		[2]string{"bob", "first"},
		[2]string{"bobby", "second"},
	)

	results := repo.SearchByUser("bob")

	// "bob" in a message body does not match; "bob" and "bobby" senders do.
	req.Len(results, 2)
	req.Contains(results[0], "bob: first")
	req.Contains(results[1], "bobby: second")
}

func TestMessageRepository_SearchPreservesInsertionOrder(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository()
	for i := 0; i < 10; i++ {
		seed(repo, [2]string{"alice", fmt.Sprintf("msg-%02d", i)})
	}

	results := repo.SearchByKeyword("msg-")

	req.Len(results, 10)
	for i, line := range results {
		req.Contains(line, fmt.Sprintf("msg-%02d", i))
	}
}

func TestMessageRepository_NoResults(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository()
	seed(repo, [2]string{"alice", "hello"})

	req.Empty(repo.SearchByKeyword("absent"))
	req.Empty(repo.SearchByUser("absent"))
}

// Appends and searches running concurrently must not corrupt the log.
// A search may or may not observe an in-flight append; only the final
// count is asserted.
func TestMessageRepository_ConcurrentAppendAndSearch(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository()

	const writers, perWriter = 4, 50
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				repo.StoreMessage(domain.NewMessage(fmt.Sprintf("user-%d", w), "ping", time.Now()))
			}
		}(w)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = repo.SearchByKeyword("ping")
		}
	}()
	wg.Wait()

	req.Equal(writers*perWriter, repo.Count())
	req.Len(repo.SearchByKeyword("ping"), writers*perWriter)
}
