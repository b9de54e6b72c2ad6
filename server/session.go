package server

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"chat-server/broadcast"
	"chat-server/domain"
	"chat-server/errors"
	"chat-server/moderation"
	"chat-server/repositories"

	"github.com/abadojack/whatlanggo"
)

const namePrompt = "Enter your name: "

var commandBanner = []string{
	"Commands available:",
	"- Type 'exit' to leave",
	"- Type '/search <query>' to search by keyword",
	"- Type '/user <username>' to search by user",
	"- Type any other message to chat",
}

// Session drives one client connection through its lifecycle:
// AwaitingName, then Active, then Terminated. While Active it waits on
// two event sources at once, the client's next input line and the next
// broadcast delivery, and fully services whichever is ready first.
// Both sources funnel into a single select, so writes to the
// connection are never interleaved.
type Session struct {
	conn        net.Conn
	key         string
	users       repositories.IUserRepository
	messages    repositories.IMessageRepository
	broadcaster *broadcast.Broadcaster
	moderator   *moderation.Moderator
	log         *slog.Logger
}

// NewSession wraps an accepted connection. The remote address is the
// stable key into the user registry for this connection's lifetime.
// A nil moderator disables content censoring.
func NewSession(
	conn net.Conn,
	users repositories.IUserRepository,
	messages repositories.IMessageRepository,
	broadcaster *broadcast.Broadcaster,
	moderator *moderation.Moderator,
	log *slog.Logger,
) *Session {
	return &Session{
		conn:        conn,
		key:         conn.RemoteAddr().String(),
		users:       users,
		messages:    messages,
		broadcaster: broadcaster,
		moderator:   moderator,
		log:         log,
	}
}

// Run blocks until the client sends "exit", closes its stream, or a
// write to the connection fails. A failure here terminates this
// session only; cleanup runs on every exit path.
func (s *Session) Run(ctx context.Context) {
	defer s.conn.Close()

	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	go s.readLines(lines, done)

	user, ok := s.awaitName(ctx, lines)
	if !ok {
		return
	}

	// Deferred in reverse: unregister first, then announce the
	// departure, then drop the subscription. The announcement is
	// best-effort when the client vanished without an exit command.
	sub := s.broadcaster.Subscribe()
	defer s.broadcaster.Unsubscribe(sub)
	defer s.announce(user.Name, "left")
	defer s.users.Unregister(s.key)

	if err := s.writeBanner(); err != nil {
		return
	}
	s.announce(user.Name, "joined")

	for {
		select {
		case <-ctx.Done():
			return
		case line, open := <-lines:
			if !open {
				// Client closed the stream without an exit command.
				// Same cleanup path as exit.
				return
			}
			if err := s.handleLine(user, line); err != nil {
				if err != errors.ErrSessionClosed {
					s.log.Debug("Session terminated", "key", s.key, "err", err)
				}
				return
			}
		case text := <-sub.C():
			if missed := sub.TakeDropped(); missed > 0 {
				if _, err := fmt.Fprintf(s.conn, "*** you missed %d messages ***\n", missed); err != nil {
					return
				}
			}
			if _, err := fmt.Fprintln(s.conn, text); err != nil {
				return
			}
		}
	}
}

// readLines pumps client input into the session loop. The extra select
// prevents the goroutine from leaking when the session ends while a
// line is in flight.
func (s *Session) readLines(lines chan<- string, done <-chan struct{}) {
	scanner := bufio.NewScanner(s.conn)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-done:
			return
		}
	}
	close(lines)
}

// awaitName prompts the client and blocks for the first line, which
// becomes the display name. An empty name is accepted as-is.
func (s *Session) awaitName(ctx context.Context, lines <-chan string) (domain.User, bool) {
	if _, err := fmt.Fprint(s.conn, namePrompt); err != nil {
		return domain.User{}, false
	}
	select {
	case <-ctx.Done():
		return domain.User{}, false
	case line, open := <-lines:
		if !open {
			return domain.User{}, false
		}
		user := s.users.Register(s.key, strings.TrimSpace(line))
		s.log.Info("User registered", "name", user.Name, "id", user.ID, "key", s.key)
		return user, true
	}
}

func (s *Session) handleLine(user domain.User, line string) error {
	switch cmd := domain.ParseCommand(line); cmd.Kind {
	case domain.KindExit:
		return errors.ErrSessionClosed
	case domain.KindSearchKeyword:
		return s.writeResults("Search results by keyword:", s.messages.SearchByKeyword(cmd.Argument))
	case domain.KindSearchUser:
		return s.writeResults("Search results by user:", s.messages.SearchByUser(cmd.Argument))
	default:
		s.postMessage(user, cmd.Argument)
		return nil
	}
}

// postMessage stores the chat line and publishes its rendered form.
// The sender receives its own message back through the broadcast
// stream like every other subscriber.
func (s *Session) postMessage(user domain.User, content string) {
	if s.moderator != nil {
		censored, found := s.moderator.Censor(content)
		if len(found) > 0 {
			info := whatlanggo.Detect(content)
			s.log.Warn("Censored message content",
				"author", user.Name,
				"words", len(found),
				"lang", info.Lang.Iso6391())
			content = censored
		}
	}
	msg := domain.NewMessage(user.Name, content, time.Now())
	s.messages.StoreMessage(msg)
	s.broadcaster.Publish(msg.Render())
}

// writeResults answers a search privately on this connection only.
func (s *Session) writeResults(header string, results []string) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(s.conn, "No results found.")
		return err
	}
	if _, err := fmt.Fprintln(s.conn, header); err != nil {
		return err
	}
	for _, result := range results {
		if _, err := fmt.Fprintln(s.conn, result); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) writeBanner() error {
	for _, line := range commandBanner {
		if _, err := fmt.Fprintln(s.conn, line); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) announce(name, action string) {
	s.broadcaster.Publish(fmt.Sprintf("*** %s has %s at %s ***",
		name, action, time.Now().Format(domain.TimestampLayout)))
}
