package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// Notifier wraps the LISTEN/NOTIFY mechanism in PostgreSQL.  It announces the
// ID of every new history entry so dashboards can refresh without polling.
type Notifier struct {
	DB      *sql.DB
	DSN     string
	Channel string
	Logger  zerolog.Logger
}

// NewNotifier constructs a new Notifier.  dsn is used to open the dedicated
// listener connection; the channel should match NOTIFY_CHANNEL.
func NewNotifier(db *sql.DB, dsn, channel string, logger zerolog.Logger) *Notifier {
	return &Notifier{DB: db, DSN: dsn, Channel: channel, Logger: logger}
}

// Notify sends payload on the channel.  NOTIFY does not accept bind
// parameters, so pg_notify is used instead.
func (n *Notifier) Notify(ctx context.Context, payload string) error {
	_, err := n.DB.ExecContext(ctx, `SELECT pg_notify($1, $2)`, n.Channel, payload)
	return err
}

// Listen delivers notification payloads until ctx is cancelled, then closes
// the returned channel.  The underlying pq.Listener reconnects on its own.
func (n *Notifier) Listen(ctx context.Context) (<-chan string, error) {
	listener := pq.NewListener(n.DSN, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			n.Logger.Warn().Err(err).Int("event", int(ev)).Msg("listener event")
		}
	})
	if err := listener.Listen(n.Channel); err != nil {
		_ = listener.Close()
		return nil, err
	}
	ch := make(chan string)
	go func() {
		defer func() {
			_ = listener.Close()
			close(ch)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case notice := <-listener.Notify:
				// nil after a reconnect; anything sent meanwhile is lost
				if notice == nil {
					continue
				}
				select {
				case ch <- notice.Extra:
				case <-ctx.Done():
					return
				}
			case <-time.After(90 * time.Second):
				go func() {
					if err := listener.Ping(); err != nil {
						n.Logger.Warn().Err(err).Msg("listener ping failed")
					}
				}()
			}
		}
	}()
	return ch, nil
}
