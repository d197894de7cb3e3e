package notificationmock

import (
	"context"
	"sync"

	"equipment-loan/internal/domain/notification"
)

var (
	_ notification.Sender     = (*Sender)(nil)
	_ notification.Dispatcher = (*Dispatcher)(nil)
)

// Sender records every message and answers with SendFn, or a delivered
// result when SendFn is nil.
type Sender struct {
	SendFn func(ctx context.Context, msg notification.Message) notification.Result

	mu   sync.Mutex
	Sent []notification.Message
}

func (m *Sender) Send(ctx context.Context, msg notification.Message) notification.Result {
	m.mu.Lock()
	m.Sent = append(m.Sent, msg)
	m.mu.Unlock()
	if m.SendFn != nil {
		return m.SendFn(ctx, msg)
	}
	return notification.Result{Delivered: true}
}

func (m *Sender) Calls() []notification.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notification.Message(nil), m.Sent...)
}

// Dispatcher records dispatched messages synchronously.
type Dispatcher struct {
	mu         sync.Mutex
	Dispatched []notification.Message
}

func (m *Dispatcher) Dispatch(_ context.Context, msg notification.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Dispatched = append(m.Dispatched, msg)
}

func (m *Dispatcher) Calls() []notification.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notification.Message(nil), m.Dispatched...)
}
