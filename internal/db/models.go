package db

import "time"

// WaitlistEntry is an insert-only signup record. Email carries a unique
// index; entries are never updated or deleted.
type WaitlistEntry struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Company   string    `json:"company,omitempty" db:"company"`
	Region    string    `json:"region,omitempty" db:"region"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type DemoRequest struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	Company       string    `json:"company" db:"company"`
	Phone         string    `json:"phone,omitempty" db:"phone"`
	PreferredDate string    `json:"preferred_date,omitempty" db:"preferred_date"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type ContactMessage struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
