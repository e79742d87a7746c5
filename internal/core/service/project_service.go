package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/platform-api/internal/core/domain"
	"github.com/taskhive/platform-api/internal/core/ports"
)

const maxPageSize = 100

// ProjectService implements project use-cases with role scoping: CLIENT
// actors only ever see their own projects, admins see everything.
type ProjectService struct {
	repo ports.ProjectRepository
	log  zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, log zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, log: log}
}

func (s *ProjectService) Create(ctx context.Context, actor ports.Actor, input ports.CreateProjectInput) (*domain.Project, error) {
	clientID := input.ClientID
	switch actor.Role {
	case domain.RoleClient:
		// Clients always create for themselves, whatever the payload says.
		clientID = actor.UserID
	case domain.RoleAdmin, domain.RoleSuperAdmin:
		if clientID == "" {
			return nil, fmt.Errorf("%w: client_id is required", domain.ErrInvalidInput)
		}
	default:
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ClientID:    clientID,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.ProjectDraft,
		Budget:      input.Budget,
		Deadline:    input.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", created.ID).Str("client_id", clientID).Msg("project created")
	return created, nil
}

func (s *ProjectService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleClient && project.ClientID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, actor ports.Actor, input ports.ListProjectsInput) (*ports.ListProjectsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := ports.ListProjectsFilter{
		Status: input.Status,
		Search: input.Search,
		Page:   page,
		Limit:  limit,
	}
	if actor.Role == domain.RoleClient {
		filter.ClientID = actor.UserID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListProjectsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *ProjectService) UpdateStatus(ctx context.Context, actor ports.Actor, id string, status domain.ProjectStatus) error {
	project, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}

	if !project.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, project.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.log.Info().Str("project_id", id).Str("status", string(status)).Msg("project status updated")
	return nil
}
