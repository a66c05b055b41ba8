package monitor

import "time"

type Status struct {
	PostgreSQL   bool      `json:"postgresql"`
	Redis        bool      `json:"redis"`
	AttemptStore bool      `json:"attempt_store"`
	LastCheck    time.Time `json:"last_check"`
}
