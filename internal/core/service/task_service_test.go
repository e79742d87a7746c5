package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskhive/platform-api/internal/core/domain"
	"github.com/taskhive/platform-api/internal/core/ports"
)

type stubTaskRepo struct {
	mu    sync.Mutex
	seq   int
	tasks map[string]*domain.Task
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := cloneTask(t)
	r.seq++
	copy.ID = "task_" + strconv.Itoa(r.seq)
	r.tasks[copy.ID] = cloneTask(copy)
	return cloneTask(copy), nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tasks[id]; ok {
		return cloneTask(t), nil
	}
	return nil, domain.ErrTaskNotFound
}

func (r *stubTaskRepo) ListByProject(_ context.Context, projectID string) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

func (r *stubTaskRepo) ListByAssignee(_ context.Context, assigneeID string) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.AssigneeID == assigneeID {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

func (r *stubTaskRepo) UpdateStatus(_ context.Context, id string, status domain.TaskStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	t.Status = status
	return nil
}

func (r *stubTaskRepo) Assign(_ context.Context, id, assigneeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	t.AssigneeID = assigneeID
	return nil
}

// seedClientProject creates a project owned by clientActor plus a task in it.
func seedClientProject(t *testing.T, tasks *stubTaskRepo, projects *stubProjectRepo, assigneeID string) (*TaskService, *domain.Task) {
	t.Helper()
	svc := NewTaskService(tasks, projects, zerolog.Nop())

	project, err := projects.Create(context.Background(), &domain.Project{Title: "Website", ClientID: clientActor.UserID, Status: domain.ProjectActive})
	if err != nil {
		t.Fatalf("seeding project failed: %v", err)
	}
	task, err := svc.Create(context.Background(), clientActor, ports.CreateTaskInput{
		ProjectID:  project.ID,
		Title:      "Build landing page",
		AssigneeID: assigneeID,
	})
	if err != nil {
		t.Fatalf("seeding task failed: %v", err)
	}
	return svc, task
}

func TestTaskService_Create_Defaults(t *testing.T) {
	svc, task := seedClientProject(t, newStubTaskRepo(), newStubProjectRepo(), "")

	if task.Status != domain.TaskTodo {
		t.Fatalf("new tasks start as todo, got %q", task.Status)
	}
	if task.Priority != domain.PriorityMedium {
		t.Fatalf("unset priority defaults to medium, got %q", task.Priority)
	}

	// Developers never create tasks, not even in projects they work on.
	if _, err := svc.Create(context.Background(), devActor, ports.CreateTaskInput{ProjectID: task.ProjectID, Title: "x"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for developer, got %v", err)
	}
}

func TestTaskService_UpdateStatus_ValidChain(t *testing.T) {
	svc, task := seedClientProject(t, newStubTaskRepo(), newStubProjectRepo(), devActor.UserID)

	chain := []domain.TaskStatus{domain.TaskInProgress, domain.TaskInReview, domain.TaskDone}
	for _, next := range chain {
		if err := svc.UpdateStatus(context.Background(), devActor, task.ID, next); err != nil {
			t.Fatalf("transition to %s failed: %v", next, err)
		}
	}
}

func TestTaskService_UpdateStatus_RejectsSkip(t *testing.T) {
	tasks := newStubTaskRepo()
	svc, task := seedClientProject(t, tasks, newStubProjectRepo(), devActor.UserID)

	// todo cannot jump straight to done.
	if err := svc.UpdateStatus(context.Background(), devActor, task.ID, domain.TaskDone); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	stored, _ := tasks.FindByID(context.Background(), task.ID)
	if stored.Status != domain.TaskTodo {
		t.Fatalf("rejected transition must not change status, got %q", stored.Status)
	}

	// Review can bounce a task back to in_progress.
	_ = svc.UpdateStatus(context.Background(), devActor, task.ID, domain.TaskInProgress)
	_ = svc.UpdateStatus(context.Background(), devActor, task.ID, domain.TaskInReview)
	if err := svc.UpdateStatus(context.Background(), devActor, task.ID, domain.TaskInProgress); err != nil {
		t.Fatalf("review must bounce back to in_progress: %v", err)
	}
}

func TestTaskService_UpdateStatus_DeveloperOwnTasksOnly(t *testing.T) {
	svc, task := seedClientProject(t, newStubTaskRepo(), newStubProjectRepo(), devActor.UserID)

	other := ports.Actor{UserID: "dev_2", Role: domain.RoleDeveloper}
	if err := svc.UpdateStatus(context.Background(), other, task.ID, domain.TaskInProgress); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a foreign developer, got %v", err)
	}

	// The assignee and an admin both may move it.
	if err := svc.UpdateStatus(context.Background(), devActor, task.ID, domain.TaskInProgress); err != nil {
		t.Fatalf("assignee must move own task: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), adminActor, task.ID, domain.TaskInReview); err != nil {
		t.Fatalf("admin must move any task: %v", err)
	}
}

func TestTaskService_Assign_AdminOnly(t *testing.T) {
	tasks := newStubTaskRepo()
	svc, task := seedClientProject(t, tasks, newStubProjectRepo(), "")

	if err := svc.Assign(context.Background(), devActor, task.ID, devActor.UserID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for developer self-assign, got %v", err)
	}
	if err := svc.Assign(context.Background(), clientActor, task.ID, devActor.UserID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for client, got %v", err)
	}

	if err := svc.Assign(context.Background(), adminActor, task.ID, devActor.UserID); err != nil {
		t.Fatalf("admin assign failed: %v", err)
	}

	assigned, err := svc.ListAssigned(context.Background(), devActor)
	if err != nil {
		t.Fatalf("list assigned failed: %v", err)
	}
	if len(assigned) != 1 || assigned[0].ID != task.ID {
		t.Fatalf("developer must see the newly assigned task, got %+v", assigned)
	}
}
