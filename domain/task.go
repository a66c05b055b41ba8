package domain

import "time"

// Task represents an activity item on the shared board.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Canonical task statuses.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusBlocked    = "blocked"
	StatusDone       = "done"
)

// Task priorities.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// ValidTaskStatus is the single membership test used by every create and
// update path.
func ValidTaskStatus(status string) bool {
	switch status {
	case StatusTodo, StatusInProgress, StatusBlocked, StatusDone:
		return true
	}
	return false
}

// ValidTaskPriority reports whether the priority belongs to the fixed set.
func ValidTaskPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Validate checks enum invariants. It runs before any store mutation so a
// bad request never produces a partial write.
func (t *Task) Validate() error {
	if t == nil {
		return ErrInvalidPayload
	}
	if t.Title == "" {
		return NewError(ErrCodeInvalid, "title is required")
	}
	if !ValidTaskStatus(t.Status) {
		return NewError(ErrCodeInvalid, "invalid status")
	}
	if !ValidTaskPriority(t.Priority) {
		return NewError(ErrCodeInvalid, "invalid priority")
	}
	return nil
}

func (t *Task) IsDone() bool {
	return t != nil && t.Status == StatusDone
}
