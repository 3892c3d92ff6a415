package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/you/draftly/domain"
)

func newTestSessionRepo(t *testing.T) (domain.SessionRepository, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSessionRepository(client, time.Hour), mr
}

func testSession(id string, userID uint) *domain.Session {
	return &domain.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "1.2.3.4",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
}

func TestSessionRepository_CreateAndFind(t *testing.T) {
	repo, _ := newTestSessionRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testSession("sess-1", 1)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByID(ctx, "sess-1")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.UserID != 1 || found.UserAgent != "test-agent" || found.IPAddress != "1.2.3.4" {
		t.Errorf("unexpected session: %+v", found)
	}
}

func TestSessionRepository_FindMissing(t *testing.T) {
	repo, _ := newTestSessionRepo(t)

	if _, err := repo.FindByID(context.Background(), "no-such-session"); err != domain.ErrSessionNotFound {
		t.Errorf("FindByID() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionRepository_FindExpiredRecord(t *testing.T) {
	repo, _ := newTestSessionRepo(t)
	ctx := context.Background()

	stale := testSession("sess-stale", 1)
	stale.ExpiresAt = time.Now().Add(-time.Minute)
	if err := repo.Create(ctx, stale); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := repo.FindByID(ctx, "sess-stale"); err != domain.ErrSessionExpired {
		t.Fatalf("FindByID() error = %v, want ErrSessionExpired", err)
	}

	// The stale record is gone afterwards
	if _, err := repo.FindByID(ctx, "sess-stale"); err != domain.ErrSessionNotFound {
		t.Errorf("second FindByID() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionRepository_Delete(t *testing.T) {
	repo, _ := newTestSessionRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testSession("sess-1", 1)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.FindByID(ctx, "sess-1"); err != domain.ErrSessionNotFound {
		t.Errorf("FindByID() after delete error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionRepository_DeleteByUser(t *testing.T) {
	repo, _ := newTestSessionRepo(t)
	ctx := context.Background()

	for _, id := range []string{"sess-a", "sess-b", "sess-c"} {
		if err := repo.Create(ctx, testSession(id, 1)); err != nil {
			t.Fatalf("Create(%s) error = %v", id, err)
		}
	}
	if err := repo.Create(ctx, testSession("sess-other", 2)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.DeleteByUser(ctx, 1); err != nil {
		t.Fatalf("DeleteByUser() error = %v", err)
	}

	for _, id := range []string{"sess-a", "sess-b", "sess-c"} {
		if _, err := repo.FindByID(ctx, id); err != domain.ErrSessionNotFound {
			t.Errorf("session %s survived mass revocation: %v", id, err)
		}
	}

	// Another user's session is untouched
	if _, err := repo.FindByID(ctx, "sess-other"); err != nil {
		t.Errorf("unrelated session lost: %v", err)
	}
}

func TestSessionRepository_RedisTTL(t *testing.T) {
	repo, mr := newTestSessionRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testSession("sess-ttl", 1)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, err := repo.FindByID(ctx, "sess-ttl"); err != domain.ErrSessionNotFound {
		t.Errorf("FindByID() after TTL error = %v, want ErrSessionNotFound", err)
	}
}
