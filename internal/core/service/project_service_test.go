package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskhive/platform-api/internal/core/domain"
	"github.com/taskhive/platform-api/internal/core/ports"
)

type stubProjectRepo struct {
	mu       sync.Mutex
	seq      int
	projects map[string]*domain.Project
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func cloneProject(p *domain.Project) *domain.Project {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := cloneProject(p)
	r.seq++
	copy.ID = "project_" + strconv.Itoa(r.seq)
	r.projects[copy.ID] = cloneProject(copy)
	return cloneProject(copy), nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.projects[id]; ok {
		return cloneProject(p), nil
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) List(_ context.Context, filter ports.ListProjectsFilter) ([]*domain.Project, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Project
	for _, p := range r.projects {
		if filter.ClientID != "" && p.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && string(p.Status) != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, cloneProject(p))
	}
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubProjectRepo) UpdateStatus(_ context.Context, id string, status domain.ProjectStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	p.Status = status
	return nil
}

var (
	clientActor = ports.Actor{UserID: "client_1", Role: domain.RoleClient}
	adminActor  = ports.Actor{UserID: "admin_1", Role: domain.RoleAdmin}
	devActor    = ports.Actor{UserID: "dev_1", Role: domain.RoleDeveloper}
)

func TestProjectService_Create_ClientOwnsProject(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, zerolog.Nop())

	// Clients create for themselves, whatever client_id the payload claims.
	project, err := svc.Create(context.Background(), clientActor, ports.CreateProjectInput{
		Title:       "Website rebuild",
		Description: "Full rebuild",
		ClientID:    "someone_else",
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if project.ClientID != clientActor.UserID {
		t.Fatalf("client project must be owned by the caller, got %q", project.ClientID)
	}
	if project.Status != domain.ProjectDraft {
		t.Fatalf("new projects start as draft, got %q", project.Status)
	}
}

func TestProjectService_Create_AdminRequiresClientID(t *testing.T) {
	svc := NewProjectService(newStubProjectRepo(), zerolog.Nop())

	if _, err := svc.Create(context.Background(), adminActor, ports.CreateProjectInput{Title: "x", Description: "y"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(context.Background(), devActor, ports.CreateProjectInput{Title: "x", Description: "y"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for developer, got %v", err)
	}
}

func TestProjectService_Get_OwnershipEnforced(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, zerolog.Nop())

	project, err := svc.Create(context.Background(), clientActor, ports.CreateProjectInput{Title: "Mine", Description: "d"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	other := ports.Actor{UserID: "client_2", Role: domain.RoleClient}
	if _, err := svc.Get(context.Background(), other, project.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign client, got %v", err)
	}
	if _, err := svc.Get(context.Background(), adminActor, project.ID); err != nil {
		t.Fatalf("admin must read any project, got %v", err)
	}
}

func TestProjectService_List_ClientScoped(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, zerolog.Nop())

	_, _ = svc.Create(context.Background(), clientActor, ports.CreateProjectInput{Title: "A", Description: "d"})
	_, _ = svc.Create(context.Background(), ports.Actor{UserID: "client_2", Role: domain.RoleClient}, ports.CreateProjectInput{Title: "B", Description: "d"})

	result, err := svc.List(context.Background(), clientActor, ports.ListProjectsInput{})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if result.Total != 1 || len(result.Items) != 1 || result.Items[0].Title != "A" {
		t.Fatalf("client must only see own projects, got %+v", result)
	}

	all, err := svc.List(context.Background(), adminActor, ports.ListProjectsInput{})
	if err != nil {
		t.Fatalf("admin list returned error: %v", err)
	}
	if all.Total != 2 {
		t.Fatalf("admin must see all projects, got %d", all.Total)
	}
}

func TestProjectService_List_PaginationClamped(t *testing.T) {
	svc := NewProjectService(newStubProjectRepo(), zerolog.Nop())

	result, err := svc.List(context.Background(), adminActor, ports.ListProjectsInput{Page: -3, Limit: 5000})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if result.Page != 1 {
		t.Fatalf("page must clamp to 1, got %d", result.Page)
	}
	if result.Limit != maxPageSize {
		t.Fatalf("limit must clamp to %d, got %d", maxPageSize, result.Limit)
	}
}

func TestProjectService_UpdateStatus_Transitions(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, zerolog.Nop())

	project, _ := svc.Create(context.Background(), clientActor, ports.CreateProjectInput{Title: "T", Description: "d"})

	if err := svc.UpdateStatus(context.Background(), clientActor, project.ID, domain.ProjectActive); err != nil {
		t.Fatalf("draft→active must be allowed: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), clientActor, project.ID, domain.ProjectCompleted); err != nil {
		t.Fatalf("active→completed must be allowed: %v", err)
	}
	// Completed is terminal.
	if err := svc.UpdateStatus(context.Background(), clientActor, project.ID, domain.ProjectActive); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from completed, got %v", err)
	}
}
