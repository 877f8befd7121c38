package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/neomorfeo/servio/internal/adapter/sqlite"
	"github.com/neomorfeo/servio/internal/domain"
)

// newTestRepo creates an in-memory SQLite repository for testing.
func newTestRepo(t *testing.T) *sqlite.ServerRepository {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("creating test repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustCreate(t *testing.T, repo *sqlite.ServerRepository, tenantID int64, name string) domain.Server {
	t.Helper()
	s, err := repo.Create(context.Background(), tenantID, name)
	if err != nil {
		t.Fatalf("mustCreate failed: %v", err)
	}
	return s
}

func TestCreate_AssignsIDAndDefaults(t *testing.T) {
	repo := newTestRepo(t)

	s := mustCreate(t, repo, 1, "server1")

	if s.ID == 0 {
		t.Error("ID should be assigned")
	}
	if s.TenantID != 1 {
		t.Errorf("TenantID = %d, want 1", s.TenantID)
	}
	if s.Name != "server1" {
		t.Errorf("Name = %q, want %q", s.Name, "server1")
	}
	if s.Status != domain.StatusPending {
		t.Errorf("Status = %q, want %q", s.Status, domain.StatusPending)
	}
	if s.DateCreated.IsZero() {
		t.Error("DateCreated should not be zero")
	}
}

func TestCreate_MonotonicIDs(t *testing.T) {
	repo := newTestRepo(t)

	s1 := mustCreate(t, repo, 1, "serverA")
	s2 := mustCreate(t, repo, 2, "serverB")
	s3 := mustCreate(t, repo, 1, "serverC")

	if !(s1.ID < s2.ID && s2.ID < s3.ID) {
		t.Errorf("ids not monotonic: %d, %d, %d", s1.ID, s2.ID, s3.ID)
	}
}

func TestCreate_IDsNeverReused(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	s1 := mustCreate(t, repo, 1, "serverA")
	if _, err := repo.Delete(ctx, 1, s1.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	s2 := mustCreate(t, repo, 1, "serverB")
	if s2.ID <= s1.ID {
		t.Errorf("id %d reused or regressed after deleting id %d", s2.ID, s1.ID)
	}
}

func TestGet_ScopedToTenant(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	s := mustCreate(t, repo, 1, "server1")

	got, err := repo.Get(ctx, 1, s.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "server1" {
		t.Errorf("Name = %q, want %q", got.Name, "server1")
	}

	// The same id under another tenant must not be revealed.
	_, err = repo.Get(ctx, 2, s.ID)
	if !errors.Is(err, domain.ErrServerNotFound) {
		t.Errorf("cross-tenant Get: expected ErrServerNotFound, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get(context.Background(), 1, 42)
	if !errors.Is(err, domain.ErrServerNotFound) {
		t.Errorf("expected ErrServerNotFound, got %v", err)
	}
}

func TestGetByID_IgnoresTenant(t *testing.T) {
	repo := newTestRepo(t)

	s := mustCreate(t, repo, 7, "server1")

	got, err := repo.GetByID(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TenantID != 7 {
		t.Errorf("TenantID = %d, want 7", got.TenantID)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, domain.ErrServerNotFound) {
		t.Errorf("expected ErrServerNotFound, got %v", err)
	}
}

func TestList_AscendingIDOrder(t *testing.T) {
	repo := newTestRepo(t)

	mustCreate(t, repo, 1, "name-1")
	mustCreate(t, repo, 1, "name-2")
	mustCreate(t, repo, 2, "name-3")
	mustCreate(t, repo, 1, "name-4")

	servers, err := repo.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(servers) != 3 {
		t.Fatalf("got %d servers, want 3", len(servers))
	}
	for i := 1; i < len(servers); i++ {
		if servers[i].ID <= servers[i-1].ID {
			t.Errorf("ids not ascending: %d before %d", servers[i-1].ID, servers[i].ID)
		}
	}
	for _, s := range servers {
		if s.TenantID != 1 {
			t.Errorf("leaked server %d from tenant %d", s.ID, s.TenantID)
		}
	}
}

func TestList_Empty(t *testing.T) {
	repo := newTestRepo(t)

	servers, err := repo.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(servers) != 0 {
		t.Errorf("got %d servers, want 0", len(servers))
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	s := mustCreate(t, repo, 1, "server1")

	ok, err := repo.UpdateStatus(ctx, s.ID, domain.StatusScheduled)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if !ok {
		t.Fatal("UpdateStatus = false, want true")
	}

	got, _ := repo.Get(ctx, 1, s.ID)
	if got.Status != domain.StatusScheduled {
		t.Errorf("Status = %q, want %q", got.Status, domain.StatusScheduled)
	}
}

func TestUpdateStatus_DeletedServer(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	s := mustCreate(t, repo, 1, "server1")
	if _, err := repo.Delete(ctx, 1, s.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	ok, err := repo.UpdateStatus(ctx, s.ID, domain.StatusScheduled)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if ok {
		t.Error("UpdateStatus = true for deleted server, want false")
	}

	// The update must not have re-created the row.
	if _, err := repo.GetByID(ctx, s.ID); !errors.Is(err, domain.ErrServerNotFound) {
		t.Errorf("deleted server resurrected: %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	s := mustCreate(t, repo, 1, "server1")

	ok, err := repo.Delete(ctx, 1, s.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !ok {
		t.Fatal("Delete = false, want true")
	}

	if _, err := repo.Get(ctx, 1, s.ID); !errors.Is(err, domain.ErrServerNotFound) {
		t.Errorf("expected ErrServerNotFound after delete, got %v", err)
	}
}

func TestDelete_WrongTenant(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	s := mustCreate(t, repo, 1, "server1")

	ok, err := repo.Delete(ctx, 2, s.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if ok {
		t.Error("Delete = true under wrong tenant, want false")
	}

	// Still present for its owner.
	if _, err := repo.Get(ctx, 1, s.ID); err != nil {
		t.Errorf("server should still exist: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	ok, err := repo.Delete(context.Background(), 1, 42)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if ok {
		t.Error("Delete = true for absent server, want false")
	}
}
