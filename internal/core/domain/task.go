package domain

import (
	"errors"
	"time"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskInReview   TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

// TaskPriority orders tasks on the dashboards.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// validTaskTransitions defines the allowed state machine transitions.
// Review can bounce a task back to in_progress.
var validTaskTransitions = map[TaskStatus][]TaskStatus{
	TaskTodo:       {TaskInProgress},
	TaskInProgress: {TaskInReview},
	TaskInReview:   {TaskInProgress, TaskDone},
}

var ErrTaskNotFound = errors.New("task not found")

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range validTaskTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Task is a unit of work inside a project, optionally assigned to a developer.
type Task struct {
	ID          string       `json:"id"`
	ProjectID   string       `json:"project_id"`
	AssigneeID  string       `json:"assignee_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
