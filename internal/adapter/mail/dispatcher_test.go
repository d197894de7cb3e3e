package mail

import (
	"context"
	"sync"
	"testing"
	"time"

	"equipment-loan/internal/domain/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type blockingSender struct {
	release chan struct{}
	mu      sync.Mutex
	sent    []notification.Message
	ctxErr  error
}

func (b *blockingSender) Send(ctx context.Context, msg notification.Message) notification.Result {
	<-b.release
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, msg)
	b.ctxErr = ctx.Err()
	return notification.Result{Detail: "smtp down"}
}

func TestAsyncDispatcher_DoesNotBlockCaller(t *testing.T) {
	s := &blockingSender{release: make(chan struct{})}
	d := NewAsyncDispatcher(s, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	d.Dispatch(ctx, notification.Message{To: "amy@example.com", Subject: "hi"})
	// the request that triggered the mail is over
	cancel()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer waitCancel()
	require.ErrorIs(t, d.Wait(waitCtx), context.DeadlineExceeded)

	close(s.release)
	require.NoError(t, d.Wait(context.Background()))

	s.mu.Lock()
	defer s.mu.Unlock()
	require.Len(t, s.sent, 1)
	assert.Equal(t, "amy@example.com", s.sent[0].To)
	assert.NoError(t, s.ctxErr, "delivery must not inherit request cancellation")
}
