package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"palette/internal/domain"
)

func snap(version uint64) domain.Snapshot {
	return domain.NewSnapshot(domain.SnapshotData{Version: version})
}

func TestPublishInSubscriptionOrder(t *testing.T) {
	b := New(nil)
	var calls []string
	b.Subscribe(func(domain.Snapshot) { calls = append(calls, "a") })
	b.Subscribe(func(domain.Snapshot) { calls = append(calls, "b") })
	b.Subscribe(func(domain.Snapshot) { calls = append(calls, "c") })

	assert.Equal(t, 3, b.Publish(snap(1)))
	assert.Equal(t, []string{"a", "b", "c"}, calls)
}

func TestUnsubscribe(t *testing.T) {
	b := New(nil)
	var calls []string
	b.Subscribe(func(domain.Snapshot) { calls = append(calls, "a") })
	unsub := b.Subscribe(func(domain.Snapshot) { calls = append(calls, "b") })
	b.Subscribe(func(domain.Snapshot) { calls = append(calls, "c") })

	unsub()
	unsub()
	b.Publish(snap(1))
	assert.Equal(t, []string{"a", "c"}, calls)
}

func TestListenerSetFrozenDuringPublish(t *testing.T) {
	b := New(nil)
	var calls []string
	var unsubB func()

	b.Subscribe(func(domain.Snapshot) {
		calls = append(calls, "a")
		unsubB()
		b.Subscribe(func(domain.Snapshot) { calls = append(calls, "late") })
	})
	unsubB = b.Subscribe(func(domain.Snapshot) { calls = append(calls, "b") })

	assert.Equal(t, 2, b.Publish(snap(1)))
	assert.Equal(t, []string{"a", "b"}, calls, "removal and addition wait for the next publish")

	calls = nil
	b.Publish(snap(2))
	assert.Equal(t, []string{"a", "late"}, calls)
}

func TestListenerReceivesSnapshot(t *testing.T) {
	b := New(nil)
	var got domain.Snapshot
	b.Subscribe(func(s domain.Snapshot) { got = s })

	b.Publish(domain.NewSnapshot(domain.SnapshotData{Version: 7, Query: "q"}))
	assert.Equal(t, uint64(7), got.Version())
	assert.Equal(t, "q", got.Query())
}

func TestListenerPanicIsRecovered(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	b := New(zap.New(core))
	called := false
	b.Subscribe(func(domain.Snapshot) { panic("boom") })
	b.Subscribe(func(domain.Snapshot) { called = true })

	assert.NotPanics(t, func() { b.Publish(snap(1)) })
	assert.True(t, called, "later listeners still run")
	assert.Equal(t, 1, logs.FilterMessage("Listener panic").Len())
}
