package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndUnregister(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	// Given no session is connected
	req.Zero(registry.Count())

	// When two sessions register
	first := NewSession(nil, "alice")
	second := NewSession(nil, "bob")
	registry.Register(first)
	registry.Register(second)

	// Then both are live
	req.Equal(2, registry.Count())

	// When one unregisters
	registry.Unregister(first.ID)

	// Then only the other remains
	req.Equal(1, registry.Count())
	seen := make(map[string]bool)
	registry.ForEach(func(s *Session) { seen[s.ID] = true })
	req.False(seen[first.ID])
	req.True(seen[second.ID])
}

func TestRegistry_UnregisterUnknownIsNoop(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	registry.Register(NewSession(nil, "alice"))
	registry.Unregister("no-such-session")

	req.Equal(1, registry.Count())
}

func TestRegistry_ConcurrentRegistration(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	const n = 100
	sessions := make([]*Session, n)
	for i := range sessions {
		sessions[i] = NewSession(nil, "user")
	}

	// When n sessions register concurrently
	var wg sync.WaitGroup
	for _, session := range sessions {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			registry.Register(s)
		}(session)
	}
	wg.Wait()

	// Then no registration is lost
	req.Equal(n, registry.Count())

	// And when half unregister concurrently
	for _, session := range sessions[:n/2] {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			registry.Unregister(s.ID)
		}(session)
	}
	wg.Wait()

	req.Equal(n/2, registry.Count())
}
