package transport

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TaskRequest carries task fields over the wire. Dates travel as strings
// and are parsed (and rejected) at the handler boundary.
type TaskRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	DueDate      string `json:"due_date"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	ReminderDate string `json:"reminder_date"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}
