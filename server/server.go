// Package server accepts TCP connections and runs one session per client.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"

	"chat-server/broadcast"
	"chat-server/moderation"
	"chat-server/repositories"
)

// Server is the acceptor. It implements contract.Worker so it runs
// under the supervisor next to the telemetry workers.
type Server struct {
	log         *slog.Logger
	listener    net.Listener
	users       repositories.IUserRepository
	messages    repositories.IMessageRepository
	broadcaster *broadcast.Broadcaster
	moderator   *moderation.Moderator
}

func NewServer(
	log *slog.Logger,
	listener net.Listener,
	users repositories.IUserRepository,
	messages repositories.IMessageRepository,
	broadcaster *broadcast.Broadcaster,
	moderator *moderation.Moderator,
) *Server {
	return &Server{
		log:         log,
		listener:    listener,
		users:       users,
		messages:    messages,
		broadcaster: broadcaster,
		moderator:   moderator,
	}
}

// Run accepts connections until the context is canceled, spawning one
// goroutine per session. Sessions run independently; a failing client
// never affects the acceptor or its peers. Run waits for live sessions
// before returning.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("Chat server listening", "address", s.listener.Addr().String())

	go func() {
		<-ctx.Done()
		_ = s.listener.Close()
	}()

	var sessions sync.WaitGroup
	defer sessions.Wait()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.log.Info("Listener closed, draining live sessions")
				return nil
			}
			s.log.Error("Accept failed", "err", err)
			continue
		}

		session := NewSession(conn, s.users, s.messages, s.broadcaster, s.moderator, s.log)
		s.log.Debug("Connection accepted", "key", session.key)
		sessions.Add(1)
		go func() {
			defer sessions.Done()
			session.Run(ctx)
		}()
	}
}
