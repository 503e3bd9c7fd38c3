package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"chat_web/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// drainOne reads a single buffered envelope without blocking the test forever.
func drainOne(t *testing.T, s *Session) models.Envelope {
	t.Helper()
	select {
	case env := <-s.Outbound():
		return env
	default:
		t.Fatalf("expected an envelope for session %s", s.ID)
		return models.Envelope{}
	}
}

func requireNoDelivery(t *testing.T, s *Session) {
	t.Helper()
	select {
	case env := <-s.Outbound():
		t.Fatalf("unexpected delivery %q to session %s", env.Event, s.ID)
	default:
	}
}

func TestHub_PublishReachesAllSessions(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	hub := NewHub(registry, discardLogger())

	alice := NewSession(nil, "alice")
	bob := NewSession(nil, "bob")
	registry.Register(alice)
	registry.Register(bob)

	hub.Publish(models.EventNewMessage, "payload")

	for _, session := range []*Session{alice, bob} {
		env := drainOne(t, session)
		req.Equal(models.EventNewMessage, env.Event)
		req.Equal("payload", env.Data)
	}
}

func TestHub_PublishOrderPreservedPerSession(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	hub := NewHub(registry, discardLogger())

	sessions := make([]*Session, 5)
	for i := range sessions {
		sessions[i] = NewSession(nil, "user")
		registry.Register(sessions[i])
	}

	// When two events are published in order A then B
	hub.Publish(models.EventNewMessage, "A")
	hub.Publish(models.EventReactionUpdated, "B")

	// Then every session observes them in that same relative order
	for _, session := range sessions {
		first := drainOne(t, session)
		second := drainOne(t, session)
		req.Equal("A", first.Data)
		req.Equal("B", second.Data)
	}
}

func TestHub_UnicastReachesOnlyTarget(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	hub := NewHub(registry, discardLogger())

	alice := NewSession(nil, "alice")
	bob := NewSession(nil, "bob")
	registry.Register(alice)
	registry.Register(bob)

	hub.Unicast(alice, models.EventLoadMessages, "history")

	env := drainOne(t, alice)
	req.Equal(models.EventLoadMessages, env.Event)
	requireNoDelivery(t, bob)
}

func TestHub_NoDeliveryAfterUnregister(t *testing.T) {
	registry := NewRegistry()
	hub := NewHub(registry, discardLogger())

	session := NewSession(nil, "alice")
	registry.Register(session)
	registry.Unregister(session.ID)

	hub.Publish(models.EventNewMessage, "payload")

	requireNoDelivery(t, session)
}

func TestHub_FullBufferDoesNotBlockOthers(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	hub := NewHub(registry, discardLogger())

	// A stalled session whose buffer holds a single event
	stalled := &Session{ID: "stalled", send: make(chan models.Envelope, 1)}
	healthy := NewSession(nil, "bob")
	registry.Register(stalled)
	registry.Register(healthy)

	hub.Publish(models.EventNewMessage, "first")
	hub.Publish(models.EventNewMessage, "second")

	// The healthy session got both events despite the stalled one
	req.Equal("first", drainOne(t, healthy).Data)
	req.Equal("second", drainOne(t, healthy).Data)

	// The stalled session kept its first event; the second was dropped,
	// not delivered out of order
	req.Equal("first", drainOne(t, stalled).Data)
	requireNoDelivery(t, stalled)
}
