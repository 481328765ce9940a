package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"palette/internal/domain"
)

// Listener is called with the latest snapshot after every recompute
type Listener func(domain.Snapshot)

// EventBus is the interface for the subscription bus
type EventBus interface {
	Publish(snapshot domain.Snapshot) int
	Subscribe(listener Listener) func()
}

type subscription struct {
	id       uint64
	listener Listener
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	listeners []subscription
	nextID    uint64
	logger    *zap.Logger
}

// New creates a new subscription bus
func New(logger *zap.Logger) EventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &bus{logger: logger}
}

// Subscribe registers a listener and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (b *bus) Subscribe(listener Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, subscription{id: id, listener: listener})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		for i, s := range b.listeners {
			if s.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish calls every listener in subscription order and returns how many were called.
// The listener set is frozen when Publish starts: listeners added or removed by a
// listener take effect from the next Publish.
func (b *bus) Publish(snapshot domain.Snapshot) int {
	b.mu.RLock()
	listenersCopy := make([]subscription, len(b.listeners))
	copy(listenersCopy, b.listeners)
	b.mu.RUnlock()

	for _, s := range listenersCopy {
		b.call(s, snapshot)
	}
	return len(listenersCopy)
}

func (b *bus) call(s subscription, snapshot domain.Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Listener panic",
				zap.Uint64("subscription", s.id),
				zap.Uint64("version", snapshot.Version()),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
		}
	}()
	s.listener(snapshot)
}
