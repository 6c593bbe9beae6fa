package mailer

import (
	"context"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Dispatcher sends notification emails off the request path through a small
// worker pool. Failures are logged and dropped: a status update must never
// block or fail because the provider is slow.
type Dispatcher struct {
	mailer *Mailer
	pool   *ants.Pool
}

func NewDispatcher(m *Mailer, workers int) (*Dispatcher, error) {
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &Dispatcher{mailer: m, pool: pool}, nil
}

// Dispatch queues msg for delivery. When the pool is saturated the send runs
// inline rather than being dropped.
func (d *Dispatcher) Dispatch(msg *Message) {
	send := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := d.mailer.Send(ctx, msg); err != nil {
			zap.L().Warn("notification email failed",
				zap.Strings("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err))
		}
	}
	if err := d.pool.Submit(send); err != nil {
		send()
	}
}

func (d *Dispatcher) Release() {
	d.pool.Release()
}
