package session

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/klondike/game/engine"
)

func createTestConfig() *engine.GameConfig {
	config := engine.DefaultConfig()
	config.Name = "Test Config"
	config.Description = "Test configuration"
	return config
}

func newTestManager() *Manager {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewManager(logger)
}

func TestManager_Create(t *testing.T) {
	manager := newTestManager()
	config := createTestConfig()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.Engine == nil {
			t.Fatal("Expected engine to be initialized")
		}
		if session.Engine.StockPile().Len() != 24 {
			t.Errorf("Expected a freshly dealt game, stock has %d cards", session.Engine.StockPile().Len())
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if len(session.ID) != 4 {
			t.Errorf("Expected 4-character session ID, got %d characters", len(session.ID))
		}
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		_, err := manager.Create("test-session", config)
		if !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION", config)
		if !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists for case variant, got %v", err)
		}
	})

	t.Run("invalid session ID", func(t *testing.T) {
		_, err := manager.Create("bad id!", config)
		if !errors.Is(err, ErrInvalidSessionID) {
			t.Errorf("Expected ErrInvalidSessionID, got %v", err)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		invalidConfig := createTestConfig()
		invalidConfig.DealSize = 2
		_, err := manager.Create("invalid-test", invalidConfig)
		if !errors.Is(err, engine.ErrInvalidDealSize) {
			t.Errorf("Expected ErrInvalidDealSize, got %v", err)
		}
	})

	t.Run("nil config uses default", func(t *testing.T) {
		session, err := manager.Create("nil-config", nil)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.Config == nil || session.Config.Name != "klondike" {
			t.Errorf("Expected default config, got %+v", session.Config)
		}
	})
}

func TestManager_Get(t *testing.T) {
	manager := newTestManager()
	created, _ := manager.Create("get-test", createTestConfig())

	t.Run("get existing session", func(t *testing.T) {
		session, err := manager.Get("get-test")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if session != created {
			t.Errorf("Expected the created session")
		}
	})

	t.Run("case-insensitive get", func(t *testing.T) {
		session, err := manager.Get("GET-TEST")
		if err != nil {
			t.Fatalf("Failed to get session with different case: %v", err)
		}
		if session.ID != created.ID {
			t.Errorf("Expected same session regardless of case")
		}
	})

	t.Run("get non-existent session", func(t *testing.T) {
		_, err := manager.Get("non-existent")
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := newTestManager()
	config := createTestConfig()

	first, err := manager.GetOrCreate("new-session", config)
	if err != nil {
		t.Fatalf("Failed to get or create session: %v", err)
	}
	second, err := manager.GetOrCreate("new-session", config)
	if err != nil {
		t.Fatalf("Failed to get existing session: %v", err)
	}
	if first != second {
		t.Error("Expected GetOrCreate to return the existing session")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}
}

func TestManager_Delete(t *testing.T) {
	manager := newTestManager()
	manager.Create("delete-me", createTestConfig())

	if err := manager.Delete("DELETE-ME"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if _, err := manager.Get("delete-me"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected session to be gone, got %v", err)
	}
	if err := manager.Delete("delete-me"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on second delete, got %v", err)
	}
}

func TestManager_List(t *testing.T) {
	manager := newTestManager()
	config := createTestConfig()

	if len(manager.List()) != 0 {
		t.Error("Expected no sessions")
	}
	for i := 0; i < 3; i++ {
		if _, err := manager.Create(fmt.Sprintf("list-%d", i), config); err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
	}
	if got := len(manager.List()); got != 3 {
		t.Errorf("Expected 3 sessions, got %d", got)
	}
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := newTestManager()
	config := createTestConfig()

	old, _ := manager.Create("old", config)
	manager.Create("fresh", config)
	old.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := manager.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 removed session, got %d", removed)
	}
	if _, err := manager.Get("old"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected expired session to be removed")
	}
	if _, err := manager.Get("fresh"); err != nil {
		t.Error("Expected fresh session to remain")
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := newTestManager()
	session, _ := manager.Create("touch", createTestConfig())
	session.LastAccessedAt = time.Now().Add(-time.Hour)

	if err := manager.UpdateLastAccessed("TOUCH"); err != nil {
		t.Fatalf("Failed to update last accessed: %v", err)
	}
	if time.Since(session.LastAccessedAt) > time.Minute {
		t.Error("Expected last accessed time to be refreshed")
	}
	if err := manager.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := newTestManager()
	config := createTestConfig()

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if _, err := manager.Create("", config); err != nil {
				errs <- err
			}
			if _, err := manager.GetOrCreate(fmt.Sprintf("shared-%d", id%5), config); err != nil && !errors.Is(err, ErrSessionAlreadyExists) {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}
	if got := manager.Count(); got != 105 {
		t.Errorf("Expected 105 sessions, got %d", got)
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := newTestManager()
	config := createTestConfig()

	session1, _ := manager.Create("iso-1", config)
	session2, _ := manager.Create("iso-2", config)

	session1.Engine.Deal()

	if session2.Engine.WastePile().Len() != 0 {
		t.Error("Session 2 should not be affected by session 1 deals")
	}
	if session1.Engine.WastePile().Len() != 1 {
		t.Error("Session 1 should have dealt one card")
	}
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := newTestManager()
	config := createTestConfig()

	generatedIDs := make(map[string]bool)
	for i := 0; i < 50; i++ {
		session, err := manager.Create("", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if generatedIDs[session.ID] {
			t.Errorf("Duplicate session ID generated: %s", session.ID)
		}
		generatedIDs[session.ID] = true

		if len(session.ID) != 4 {
			t.Errorf("Expected 4-character ID, got %d", len(session.ID))
		}
	}
}
