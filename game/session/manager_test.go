package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/solitaire/game/engine"
)

func createTestConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		Layout:      engine.DefaultLayout(),
	}
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", config, 0)
		require.NoError(t, err)
		assert.Equal(t, "test-session", session.ID)
		require.NotNil(t, session.Board)
		require.NotNil(t, session.Controller)
		assert.NoError(t, session.Board.Check(nil), "expected a complete dealt board")
		assert.NotZero(t, session.Seed, "a random seed is recorded")
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", config, 0)
		require.NoError(t, err)
		assert.Len(t, session.ID, 4)
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		_, err := manager.Create("test-session", config, 0)
		assert.ErrorIs(t, err, ErrSessionAlreadyExists)
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION", config, 0)
		assert.ErrorIs(t, err, ErrSessionAlreadyExists)
	})

	t.Run("invalid config", func(t *testing.T) {
		invalidConfig := createTestConfig()
		invalidConfig.Layout.CardWidth = 0
		_, err := manager.Create("invalid-test", invalidConfig, 0)
		assert.ErrorIs(t, err, ErrInvalidConfig)

		_, err = manager.Create("nil-test", nil, 0)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestManager_SeededDeal(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	a, err := manager.Create("seed-a", config, 42)
	require.NoError(t, err)
	b, err := manager.Create("seed-b", config, 42)
	require.NoError(t, err)
	c, err := manager.Create("seed-c", config, 43)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), a.Seed)
	assert.Equal(t, a.Board.Deck, b.Board.Deck, "same seed deals the same deck")
	assert.NotEqual(t, a.Board.Deck, c.Board.Deck, "different seeds deal different decks")
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	created, err := manager.Create("get-test", createTestConfig(), 0)
	require.NoError(t, err)

	t.Run("get existing session", func(t *testing.T) {
		session, err := manager.Get("get-test")
		require.NoError(t, err)
		assert.Same(t, created, session)
	})

	t.Run("case-insensitive get", func(t *testing.T) {
		session, err := manager.Get("GET-TEST")
		require.NoError(t, err)
		assert.Same(t, created, session)
	})

	t.Run("get non-existent session", func(t *testing.T) {
		_, err := manager.Get("non-existent")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	_, err := manager.Create("delete-test", config, 0)
	require.NoError(t, err)

	t.Run("delete existing session", func(t *testing.T) {
		require.NoError(t, manager.Delete("delete-test"))
		_, err := manager.Get("delete-test")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("delete non-existent session", func(t *testing.T) {
		assert.ErrorIs(t, manager.Delete("non-existent"), ErrSessionNotFound)
	})

	t.Run("case-insensitive delete", func(t *testing.T) {
		_, err := manager.Create("case-test", config, 0)
		require.NoError(t, err)
		require.NoError(t, manager.Delete("CASE-TEST"))
		_, err = manager.Get("case-test")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestManager_List(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	var want []string
	for i := 1; i <= 3; i++ {
		session, err := manager.Create(fmt.Sprintf("list-%d", i), config, 0)
		require.NoError(t, err)
		want = append(want, session.ID)
	}

	var got []string
	for _, s := range manager.List() {
		got = append(got, s.ID)
	}
	assert.ElementsMatch(t, want, got)
	assert.Equal(t, 3, manager.Count())
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	active, err := manager.Create("active", config, 0)
	require.NoError(t, err)
	expired, err := manager.Create("expired", config, 0)
	require.NoError(t, err)

	expired.LastAccessedAt = time.Now().Add(-2 * time.Hour)
	active.LastAccessedAt = time.Now()

	assert.Equal(t, []string{"expired"}, manager.CleanupExpiredSessions(time.Hour))

	_, err = manager.Get("expired")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = manager.Get("active")
	assert.NoError(t, err)
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()

	session, err := manager.Create("access-test", createTestConfig(), 0)
	require.NoError(t, err)
	session.LastAccessedAt = time.Now().Add(-time.Minute)
	originalTime := session.LastAccessedAt

	require.NoError(t, manager.UpdateLastAccessed("ACCESS-TEST"))
	assert.True(t, session.LastAccessedAt.After(originalTime))

	assert.ErrorIs(t, manager.UpdateLastAccessed("missing"), ErrSessionNotFound)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := range 100 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			session, err := manager.Create(fmt.Sprintf("c-%d", n%50), config, 0)
			if err != nil && err != ErrSessionAlreadyExists {
				errs <- err
				return
			}
			if session != nil {
				manager.UpdateLastAccessed(session.ID)
			}
			manager.List()
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}
	assert.Equal(t, 50, manager.Count())
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	session1, err := manager.Create("iso-1", config, 7)
	require.NoError(t, err)
	session2, err := manager.Create("iso-2", config, 7)
	require.NoError(t, err)

	session1.Board.DrawCard()

	assert.Empty(t, session2.Board.Waste, "session 2 is not affected by session 1 draws")
	assert.NotEqual(t, len(session1.Board.Deck), len(session2.Board.Deck))
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	generatedIDs := make(map[string]bool)
	for range 50 {
		session, err := manager.Create("", config, 0)
		require.NoError(t, err)
		assert.False(t, generatedIDs[session.ID], "duplicate session ID %s", session.ID)
		assert.Len(t, session.ID, 4)
		generatedIDs[session.ID] = true
	}
}
