package otel_test

import (
	"context"
	"errors"
	"testing"

	adapter "github.com/neomorfeo/servio/internal/adapter/otel"
	"github.com/neomorfeo/servio/internal/domain"
)

// fakeRepo returns canned values so the decorator's pass-through can be verified.
type fakeRepo struct {
	server domain.Server
	list   []domain.Server
	ok     bool
	err    error
	calls  []string
}

func (f *fakeRepo) Create(_ context.Context, _ int64, _ string) (domain.Server, error) {
	f.calls = append(f.calls, "Create")
	return f.server, f.err
}

func (f *fakeRepo) Get(_ context.Context, _, _ int64) (domain.Server, error) {
	f.calls = append(f.calls, "Get")
	return f.server, f.err
}

func (f *fakeRepo) GetByID(_ context.Context, _ int64) (domain.Server, error) {
	f.calls = append(f.calls, "GetByID")
	return f.server, f.err
}

func (f *fakeRepo) List(_ context.Context, _ int64) ([]domain.Server, error) {
	f.calls = append(f.calls, "List")
	return f.list, f.err
}

func (f *fakeRepo) UpdateStatus(_ context.Context, _ int64, _ domain.Status) (bool, error) {
	f.calls = append(f.calls, "UpdateStatus")
	return f.ok, f.err
}

func (f *fakeRepo) Delete(_ context.Context, _, _ int64) (bool, error) {
	f.calls = append(f.calls, "Delete")
	return f.ok, f.err
}

func TestTracingRepository_PassesThroughValues(t *testing.T) {
	inner := &fakeRepo{
		server: domain.Server{ID: 7, TenantID: 1, Name: "server1", Status: domain.StatusPending},
		list:   []domain.Server{{ID: 7}, {ID: 8}},
		ok:     true,
	}
	repo := adapter.NewTracingRepository(inner)
	ctx := context.Background()

	if s, err := repo.Create(ctx, 1, "server1"); err != nil || s.ID != 7 {
		t.Errorf("Create = (%v, %v), want id 7", s, err)
	}
	if s, err := repo.Get(ctx, 1, 7); err != nil || s.ID != 7 {
		t.Errorf("Get = (%v, %v), want id 7", s, err)
	}
	if s, err := repo.GetByID(ctx, 7); err != nil || s.ID != 7 {
		t.Errorf("GetByID = (%v, %v), want id 7", s, err)
	}
	if list, err := repo.List(ctx, 1); err != nil || len(list) != 2 {
		t.Errorf("List = (%v, %v), want 2 servers", list, err)
	}
	if ok, err := repo.UpdateStatus(ctx, 7, domain.StatusScheduled); err != nil || !ok {
		t.Errorf("UpdateStatus = (%v, %v), want true", ok, err)
	}
	if ok, err := repo.Delete(ctx, 1, 7); err != nil || !ok {
		t.Errorf("Delete = (%v, %v), want true", ok, err)
	}

	want := []string{"Create", "Get", "GetByID", "List", "UpdateStatus", "Delete"}
	if len(inner.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", inner.calls, want)
	}
	for i, name := range want {
		if inner.calls[i] != name {
			t.Errorf("call %d = %q, want %q", i, inner.calls[i], name)
		}
	}
}

func TestTracingRepository_PassesThroughErrors(t *testing.T) {
	inner := &fakeRepo{err: domain.ErrServerNotFound}
	repo := adapter.NewTracingRepository(inner)

	if _, err := repo.GetByID(context.Background(), 42); !errors.Is(err, domain.ErrServerNotFound) {
		t.Errorf("expected ErrServerNotFound, got %v", err)
	}
}
