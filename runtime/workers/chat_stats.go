package workers

import (
	"context"
	"log/slog"
	"time"

	"chat-server/broadcast"
	"chat-server/repositories"
)

// ChatStatsWorker periodically reports registry size, history length
// and broadcast queue pressure. All reads are cheap snapshots, so the
// sampling never interferes with live sessions. Metrics are sampled
// periodically; missing an instant between ticks is fine.
type ChatStatsWorker struct {
	log            *slog.Logger
	users          repositories.IUserRepository
	messages       repositories.IMessageRepository
	broadcaster    *broadcast.Broadcaster
	metricInterval time.Duration
}

func NewChatStatsWorker(
	log *slog.Logger,
	users repositories.IUserRepository,
	messages repositories.IMessageRepository,
	broadcaster *broadcast.Broadcaster,
	metricInterval time.Duration,
) *ChatStatsWorker {
	return &ChatStatsWorker{
		log:            log,
		users:          users,
		messages:       messages,
		broadcaster:    broadcaster,
		metricInterval: metricInterval,
	}
}

func (w ChatStatsWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping stats sampling")
			return nil
		case <-ticker.C:
			stats := w.broadcaster.Stats()
			w.log.Info("Chat stats",
				"users", w.users.Count(),
				"history", w.messages.Count(),
				"subscribers", stats.Subscribers,
				"queued", stats.Queued,
				"dropped", stats.Dropped,
			)
		}
	}
}
