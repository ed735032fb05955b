package domain

import "time"

type Setting struct {
	ID        uint      `json:"id"`
	Category  string    `json:"category"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
