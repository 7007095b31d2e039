package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Task field limits.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// Task is a single to-do item. It belongs to exactly one user for its whole
// lifetime; UserID and CreatedAt are fixed at creation.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	DueDate     *time.Time `json:"due_date"`
}

// NewTaskParams holds the caller-supplied fields of a new task.
type NewTaskParams struct {
	Title       string
	Description *string
	DueDate     *time.Time
}

// NewTask creates an incomplete task owned by userID.
// An empty description is stored as no description.
func NewTask(userID uuid.UUID, params NewTaskParams) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       params.Title,
		Description: normalizeDescription(params.Description),
		IsCompleted: false,
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
		DueDate:     normalizeDueDate(params.DueDate),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data, reporting every violation.
func (t *Task) Validate() error {
	verr := &ValidationError{}
	if t.ID == uuid.Nil {
		verr.Add("id", "is required")
	}
	if t.UserID == uuid.Nil {
		verr.Add("user_id", "is required")
	}
	validateTitle(verr, t.Title)
	if t.Description != nil {
		validateDescription(verr, *t.Description)
	}
	if t.CreatedAt.IsZero() {
		verr.Add("created_at", "is required")
	}
	return verr.OrNil()
}

// TaskPatch is a partial update of a task. Fields that were not supplied are
// left untouched by Apply. There is deliberately no owner field.
type TaskPatch struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	IsCompleted Optional[bool]      `json:"is_completed"`
	DueDate     Optional[time.Time] `json:"due_date"`
}

// IsEmpty reports whether no field was supplied at all.
func (p TaskPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.IsCompleted.Set && !p.DueDate.Set
}

// Validate checks the supplied values against the task field limits.
func (p TaskPatch) Validate() error {
	verr := &ValidationError{}
	if p.Title.HasValue() {
		validateTitle(verr, p.Title.Value)
	}
	if p.Description.HasValue() {
		validateDescription(verr, p.Description.Value)
	}
	return verr.OrNil()
}

// Apply copies the supplied fields onto task.
//
// A null or empty description clears it and a null due date clears it.
// A null title or completion flag carries no meaning and is ignored.
func (p TaskPatch) Apply(task *Task) {
	if p.Title.HasValue() {
		task.Title = p.Title.Value
	}
	if p.Description.Set {
		task.Description = normalizeDescription(p.Description.Ptr())
	}
	if p.IsCompleted.HasValue() {
		task.IsCompleted = p.IsCompleted.Value
	}
	if p.DueDate.Set {
		task.DueDate = normalizeDueDate(p.DueDate.Ptr())
	}
}

func validateTitle(verr *ValidationError, title string) {
	switch {
	case strings.TrimSpace(title) == "":
		verr.Add("title", "is required")
	case utf8.RuneCountInString(title) > MaxTitleLength:
		verr.Add("title", fmt.Sprintf("must be at most %d characters", MaxTitleLength))
	}
}

func validateDescription(verr *ValidationError, description string) {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		verr.Add("description", fmt.Sprintf("must be at most %d characters", MaxDescriptionLength))
	}
}

func normalizeDescription(d *string) *string {
	if d == nil || *d == "" {
		return nil
	}
	v := *d
	return &v
}

// normalizeDueDate stores due dates in UTC at millisecond precision, the
// precision every supported store can round-trip.
func normalizeDueDate(d *time.Time) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	v := d.UTC().Truncate(time.Millisecond)
	return &v
}
