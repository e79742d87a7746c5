package ports

import (
	"context"
	"time"

	"github.com/taskhive/platform-api/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a task in a project.
type CreateTaskInput struct {
	ProjectID   string
	Title       string
	Description string
	Priority    domain.TaskPriority
	AssigneeID  string
	DueDate     *time.Time
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	Create(ctx context.Context, actor Actor, input CreateTaskInput) (*domain.Task, error)
	ListByProject(ctx context.Context, actor Actor, projectID string) ([]*domain.Task, error)
	// ListAssigned returns the developer dashboard's task list: every task
	// currently assigned to the calling developer.
	ListAssigned(ctx context.Context, actor Actor) ([]*domain.Task, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, status domain.TaskStatus) error
	Assign(ctx context.Context, actor Actor, id, assigneeID string) error
}
