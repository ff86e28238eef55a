package db

import (
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrDuplicateEmail is returned when an insert hits the unique email index.
var ErrDuplicateEmail = errors.New("email already registered")

const uniqueViolation = "23505"

type Repository struct {
	db *sqlx.DB
}

func NewConnection(databaseURL string, maxConns, maxIdle int) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Ping() error {
	return r.db.Ping()
}

// Waitlist operations
func (r *Repository) CreateWaitlistEntry(e *WaitlistEntry) error {
	query := `
        INSERT INTO waitlist_entries (
            id, name, email, company, region, created_at
        ) VALUES (
            :id, :name, :email, :company, :region, :created_at
        )`

	_, err := r.db.NamedExec(query, e)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *Repository) CountWaitlistEntries() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM waitlist_entries`
	err := r.db.Get(&count, query)
	return count, err
}

// Demo booking operations
func (r *Repository) CreateDemoRequest(d *DemoRequest) error {
	query := `
        INSERT INTO demo_requests (
            id, name, email, company, phone, preferred_date, created_at
        ) VALUES (
            :id, :name, :email, :company, :phone, :preferred_date, :created_at
        )`

	_, err := r.db.NamedExec(query, d)
	return err
}

// Contact operations
func (r *Repository) CreateContactMessage(m *ContactMessage) error {
	query := `
        INSERT INTO contact_messages (
            id, name, email, message, created_at
        ) VALUES (
            :id, :name, :email, :message, :created_at
        )`

	_, err := r.db.NamedExec(query, m)
	return err
}
