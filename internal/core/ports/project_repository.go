package ports

import (
	"context"

	"github.com/taskhive/platform-api/internal/core/domain"
)

// ListProjectsFilter carries all query parameters for listing projects.
// ClientID is always enforced by the service layer for the CLIENT role.
type ListProjectsFilter struct {
	ClientID string // empty = no filter (admin); non-empty = scoped to owner
	Status   string // optional: filter by project status
	Search   string // optional: partial match on title
	Page     int    // 1-based
	Limit    int    // max rows per page (capped at 100 by service)
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// List returns a page of projects matching filter and the total count.
	List(ctx context.Context, filter ListProjectsFilter) ([]*domain.Project, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) error
}
