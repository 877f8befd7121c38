package app

import (
	"context"
	"fmt"

	"github.com/neomorfeo/servio/internal/domain"
)

// ServerService orchestrates server lifecycle operations.
type ServerService struct {
	repo       domain.ServerRepository
	dispatcher domain.TaskDispatcher
}

// NewServerService creates a service with the given adapters.
func NewServerService(repo domain.ServerRepository, dispatcher domain.TaskDispatcher) *ServerService {
	return &ServerService{
		repo:       repo,
		dispatcher: dispatcher,
	}
}

// Create validates the name, persists a new server in status pending, and
// schedules exactly one background provisioning job for it. The job runs
// asynchronously; Create never waits for any provisioning step.
func (s *ServerService) Create(ctx context.Context, tenantID int64, name string) (domain.Server, error) {
	if !domain.ValidName(name) {
		return domain.Server{}, &domain.NameLengthError{Name: name}
	}

	server, err := s.repo.Create(ctx, tenantID, name)
	if err != nil {
		return domain.Server{}, fmt.Errorf("creating server: %w", err)
	}

	if err := s.dispatcher.Schedule(ctx, server.ID); err != nil {
		return domain.Server{}, fmt.Errorf("scheduling provisioning: %w", err)
	}

	return server, nil
}

// Get returns a server by id, scoped to the given tenant.
func (s *ServerService) Get(ctx context.Context, tenantID, id int64) (domain.Server, error) {
	return s.repo.Get(ctx, tenantID, id)
}

// List returns all servers for the tenant in ascending id order.
func (s *ServerService) List(ctx context.Context, tenantID int64) ([]domain.Server, error) {
	return s.repo.List(ctx, tenantID)
}

// Delete removes a server. Any in-flight provisioning job discovers the
// absence on its next step and stops; there is no job cancellation.
func (s *ServerService) Delete(ctx context.Context, tenantID, id int64) error {
	ok, err := s.repo.Delete(ctx, tenantID, id)
	if err != nil {
		return fmt.Errorf("deleting server: %w", err)
	}
	if !ok {
		return domain.ErrServerNotFound
	}
	return nil
}
