package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/platform-api/internal/core/domain"
	"github.com/taskhive/platform-api/internal/core/ports"
)

// TaskService implements task use-cases. Clients manage tasks inside their
// own projects, developers work the tasks assigned to them, admins see all.
type TaskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	log      zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, projects ports.ProjectRepository, log zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, log: log}
}

func (s *TaskService) Create(ctx context.Context, actor ports.Actor, input ports.CreateTaskInput) (*domain.Task, error) {
	if err := s.authorizeProject(ctx, actor, input.ProjectID); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ProjectID:   input.ProjectID,
		AssigneeID:  input.AssigneeID,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.TaskTodo,
		Priority:    priority,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("task_id", created.ID).Str("project_id", created.ProjectID).Msg("task created")
	return created, nil
}

func (s *TaskService) ListByProject(ctx context.Context, actor ports.Actor, projectID string) ([]*domain.Task, error) {
	if err := s.authorizeProject(ctx, actor, projectID); err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *TaskService) ListAssigned(ctx context.Context, actor ports.Actor) ([]*domain.Task, error) {
	if actor.Role != domain.RoleDeveloper {
		return nil, domain.ErrForbidden
	}
	return s.tasks.ListByAssignee(ctx, actor.UserID)
}

func (s *TaskService) UpdateStatus(ctx context.Context, actor ports.Actor, id string, status domain.TaskStatus) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// Developers may only move their own tasks; clients their own projects'.
	switch actor.Role {
	case domain.RoleDeveloper:
		if task.AssigneeID != actor.UserID {
			return domain.ErrForbidden
		}
	case domain.RoleClient:
		if err := s.authorizeProject(ctx, actor, task.ProjectID); err != nil {
			return err
		}
	case domain.RoleAdmin, domain.RoleSuperAdmin:
	default:
		return domain.ErrForbidden
	}

	if !task.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, task.Status, status)
	}

	if err := s.tasks.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.log.Info().Str("task_id", id).Str("status", string(status)).Msg("task status updated")
	return nil
}

func (s *TaskService) Assign(ctx context.Context, actor ports.Actor, id, assigneeID string) error {
	if !domain.IsAdminRole(actor.Role) {
		return domain.ErrForbidden
	}
	if _, err := s.tasks.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.tasks.Assign(ctx, id, assigneeID); err != nil {
		return err
	}

	s.log.Info().Str("task_id", id).Str("assignee_id", assigneeID).Msg("task assigned")
	return nil
}

// authorizeProject checks that actor may touch projectID's tasks.
func (s *TaskService) authorizeProject(ctx context.Context, actor ports.Actor, projectID string) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if actor.Role == domain.RoleClient && project.ClientID != actor.UserID {
		return domain.ErrForbidden
	}
	if actor.Role == domain.RoleDeveloper {
		return domain.ErrForbidden
	}
	return nil
}
