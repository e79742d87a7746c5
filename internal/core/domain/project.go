package domain

import (
	"errors"
	"time"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// validProjectTransitions defines the allowed state machine transitions.
var validProjectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectDraft:  {ProjectActive, ProjectCancelled},
	ProjectActive: {ProjectOnHold, ProjectCompleted, ProjectCancelled},
	ProjectOnHold: {ProjectActive, ProjectCancelled},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrProjectNotFound = errors.New("project not found")
var ErrInvalidInput = errors.New("invalid input")

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	for _, allowed := range validProjectTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Project is a client-owned unit of work that tasks are grouped under.
type Project struct {
	ID          string        `json:"id"`
	ClientID    string        `json:"client_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	Budget      float64       `json:"budget,omitempty"`
	Deadline    *time.Time    `json:"deadline,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
