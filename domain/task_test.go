package domain

import "testing"

func TestValidTaskStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusTodo, true},
		{StatusInProgress, true},
		{StatusBlocked, true},
		{StatusDone, true},
		{"", false},
		{"triage", false},
		{"TODO", false},
		{"completed", false},
		{"in progress", false},
	}

	for _, tt := range tests {
		if got := ValidTaskStatus(tt.status); got != tt.want {
			t.Errorf("ValidTaskStatus(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestValidTaskPriority(t *testing.T) {
	tests := []struct {
		priority string
		want     bool
	}{
		{PriorityLow, true},
		{PriorityMedium, true},
		{PriorityHigh, true},
		{PriorityUrgent, true},
		{"", false},
		{"medium", false},
		{"CRITICAL", false},
	}

	for _, tt := range tests {
		if got := ValidTaskPriority(tt.priority); got != tt.want {
			t.Errorf("ValidTaskPriority(%q) = %v, want %v", tt.priority, got, tt.want)
		}
	}
}

func TestTaskValidate(t *testing.T) {
	valid := Task{
		Title:    "write report",
		Priority: PriorityHigh,
		Status:   StatusTodo,
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid task: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Task)
	}{
		{"missing title", func(task *Task) { task.Title = "" }},
		{"bad status", func(task *Task) { task.Status = "archived" }},
		{"bad priority", func(task *Task) { task.Priority = "SEVERE" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := valid
			tt.mutate(&task)
			err := task.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !IsDomainError(err, ErrCodeInvalid) {
				t.Errorf("Validate() code = %v, want INVALID", err)
			}
		})
	}

	var nilTask *Task
	if err := nilTask.Validate(); err == nil {
		t.Error("Validate() on nil task = nil, want error")
	}
}

func TestTaskIsDone(t *testing.T) {
	if (&Task{Status: StatusDone}).IsDone() != true {
		t.Error("done task reported not done")
	}
	if (&Task{Status: StatusTodo}).IsDone() {
		t.Error("todo task reported done")
	}
}
