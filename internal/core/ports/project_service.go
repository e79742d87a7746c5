package ports

import (
	"context"
	"time"

	"github.com/taskhive/platform-api/internal/core/domain"
)

// Actor identifies the authenticated caller to a service method, so RBAC
// decisions live in the service layer rather than in handlers.
type Actor struct {
	UserID string
	Role   string
}

// CreateProjectInput carries all data needed to create a new project.
type CreateProjectInput struct {
	Title       string
	Description string
	Budget      float64
	Deadline    *time.Time
	// ClientID is the owning client. Admins may create on behalf of a
	// client; clients always create for themselves.
	ClientID string
}

// ListProjectsInput carries all parameters for the list endpoint.
type ListProjectsInput struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// ListProjectsResult is the paginated list response.
type ListProjectsResult struct {
	Items      []*domain.Project
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	Create(ctx context.Context, actor Actor, input CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Project, error)
	List(ctx context.Context, actor Actor, input ListProjectsInput) (*ListProjectsResult, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, status domain.ProjectStatus) error
}
