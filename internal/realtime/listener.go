// Package realtime turns Postgres NOTIFY messages from the change triggers
// into change events.
package realtime

import (
	"context"
	"fmt"
	"time"

	"greengrass/internal/database"
	"greengrass/internal/events"
	"greengrass/internal/logger"

	"github.com/lib/pq"
)

const pingInterval = 90 * time.Second

// Handler receives decoded changes. Resync is called after the connection
// was lost, since notifications sent meanwhile are gone.
type Handler interface {
	HandleChange(ctx context.Context, event events.ChangeEvent) error
	Resync(ctx context.Context) error
}

type Listener struct {
	dsn     string
	handler Handler
	logger  *logger.Logger
}

func NewListener(dsn string, handler Handler, logger *logger.Logger) *Listener {
	return &Listener{dsn: dsn, handler: handler, logger: logger}
}

// Run listens on the change channel until ctx is done.
func (l *Listener) Run(ctx context.Context) error {
	listener := pq.NewListener(l.dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			l.logger.Warn("Postgres listener event %d: %v", ev, err)
		}
	})
	defer listener.Close()

	if err := listener.Listen(database.ChangeChannel); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", database.ChangeChannel, err)
	}
	l.logger.Info("Listening for changes on %s", database.ChangeChannel)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-listener.Notify:
			l.dispatch(ctx, n)
		case <-ticker.C:
			if err := listener.Ping(); err != nil {
				l.logger.Warn("Postgres listener ping failed: %v", err)
			}
		}
	}
}

// dispatch hands one notification to the handler. A nil notification means
// the connection was re-established.
func (l *Listener) dispatch(ctx context.Context, n *pq.Notification) {
	if n == nil {
		l.logger.Info("Postgres listener reconnected, resyncing")
		if err := l.handler.Resync(ctx); err != nil {
			l.logger.Error("Resync failed: %v", err)
		}
		return
	}

	event, err := events.Decode([]byte(n.Extra))
	if err != nil {
		l.logger.Error("Dropping notification on %s: %v", n.Channel, err)
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if err := l.handler.HandleChange(ctx, event); err != nil {
		l.logger.Error("Failed to handle %s change on %s: %v", event.Action, event.Table, err)
	}
}
