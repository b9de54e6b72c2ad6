package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chat-server/broadcast"
	"chat-server/logging"
	"chat-server/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestChatStatsWorker_SamplesAndStopsOnCancel(t *testing.T) {
	req := require.New(t)
	log := logging.GetLoggerFromLevel(slog.LevelError)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockIUserRepository(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)
	users.EXPECT().Count().Return(3).MinTimes(1)
	messages.EXPECT().Count().Return(42).MinTimes(1)

	worker := NewChatStatsWorker(
		log,
		users,
		messages,
		broadcast.NewBroadcaster(log, 4),
		5*time.Millisecond,
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	// Let a few sampling ticks happen before stopping.
	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("stats worker did not stop")
	}
}

func TestHeartbeatWorker_StopsOnContextCancel(t *testing.T) {
	req := require.New(t)
	log := logging.GetLoggerFromLevel(slog.LevelError)
	worker := NewHeartbeatWorker(log, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("heartbeat worker did not stop")
	}
}
