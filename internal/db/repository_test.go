package db

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestCreateWaitlistEntry(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO waitlist_entries").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateWaitlistEntry(&WaitlistEntry{
		ID:        "e1",
		Name:      "Ada",
		Email:     "ada@example.com",
		CreatedAt: time.Now(),
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWaitlistEntryDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO waitlist_entries").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.CreateWaitlistEntry(&WaitlistEntry{
		ID:        "e2",
		Name:      "Ada",
		Email:     "ada@example.com",
		CreatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestCreateWaitlistEntryOtherError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO waitlist_entries").
		WillReturnError(errors.New("connection reset"))

	err := repo.CreateWaitlistEntry(&WaitlistEntry{
		ID:        "e3",
		Email:     "ada@example.com",
		CreatedAt: time.Now(),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}

func TestCreateDemoRequest(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO demo_requests").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateDemoRequest(&DemoRequest{
		ID:        "d1",
		Name:      "Ada",
		Email:     "ada@example.com",
		Company:   "Analytical Engines",
		CreatedAt: time.Now(),
	})
	assert.NoError(t, err)
}

func TestCreateContactMessage(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO contact_messages").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateContactMessage(&ContactMessage{
		ID:        "c1",
		Name:      "Ada",
		Email:     "ada@example.com",
		Message:   "Tell me more",
		CreatedAt: time.Now(),
	})
	assert.NoError(t, err)
}
