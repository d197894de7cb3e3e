package mail

import (
	"context"
	"sync"

	"equipment-loan/internal/domain/notification"

	"go.uber.org/zap"
)

// AsyncDispatcher sends each message on its own goroutine. The caller's
// context only contributes values; its cancellation does not abort delivery.
type AsyncDispatcher struct {
	sender notification.Sender
	log    *zap.Logger
	wg     sync.WaitGroup
}

var _ notification.Dispatcher = (*AsyncDispatcher)(nil)

func NewAsyncDispatcher(sender notification.Sender, log *zap.Logger) *AsyncDispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &AsyncDispatcher{sender: sender, log: log}
}

func (d *AsyncDispatcher) Dispatch(ctx context.Context, msg notification.Message) {
	ctx = context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		res := d.sender.Send(ctx, msg)
		if !res.Delivered {
			d.log.Error("notification dropped",
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.String("detail", res.Detail),
			)
		}
	}()
}

// Wait blocks until in-flight notifications finish or ctx is done.
func (d *AsyncDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
