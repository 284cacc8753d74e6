package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/MKhiriev/tradeflix-auth/models"
	"github.com/google/uuid"
)

func newTestSessionRepo(t *testing.T) (*sessionRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &sessionRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func sessionRow(id uuid.UUID, userID int64, valid bool, expiresAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(sessionColumns).
		AddRow(id, userID, "sha256-hex", expiresAt, "integration-test/1.0", valid, time.Now())
}

func TestCreateSession_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	session := models.Session{
		UserID:    1,
		TokenHash: "sha256-hex",
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
		UserAgent: "integration-test/1.0",
	}

	mock.ExpectQuery("INSERT INTO sessions").
		WithArgs(sqlmock.AnyArg(), session.UserID, session.TokenHash, session.ExpiresAt, session.UserAgent, true).
		WillReturnRows(sessionRow(uuid.New(), 1, true, session.ExpiresAt))

	created, err := repo.CreateSession(context.Background(), session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.SessionID == uuid.Nil {
		t.Error("expected server-assigned session id")
	}
	if !created.IsValid {
		t.Error("new session must be valid")
	}
}

func TestFindSessionByTokenHash_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("sha256-hex").
		WillReturnRows(sessionRow(id, 1, true, time.Now().Add(time.Hour)))

	found, err := repo.FindSessionByTokenHash(context.Background(), "sha256-hex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.SessionID != id {
		t.Errorf("expected session %s, got %s", id, found.SessionID)
	}
}

func TestFindSessionByTokenHash_NotFound(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("unknown-hash").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindSessionByTokenHash(context.Background(), "unknown-hash")
	if !errors.Is(err, ErrNoSessionWasFound) {
		t.Fatalf("expected ErrNoSessionWasFound, got %v", err)
	}
}

func TestInvalidateSession_Winner(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec("UPDATE sessions").
		WithArgs(false, true, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.InvalidateSession(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// The conditional update is the rotation race guard: when the row was already
// flipped by a concurrent refresh, zero rows are affected and the caller must
// treat its secret as dead.
func TestInvalidateSession_LoserGetsAlreadyInvalid(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec("UPDATE sessions").
		WithArgs(false, true, id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.InvalidateSession(context.Background(), id)
	if !errors.Is(err, ErrSessionAlreadyInvalid) {
		t.Fatalf("expected ErrSessionAlreadyInvalid, got %v", err)
	}
}

func TestInvalidateAllUserSessions(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE sessions").
		WithArgs(false, true, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	affected, err := repo.InvalidateAllUserSessions(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 3 {
		t.Errorf("expected 3 invalidated sessions, got %d", affected)
	}
}

func TestInvalidateAllUserSessions_NoLiveSessionsIsNotAnError(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE sessions").
		WithArgs(false, true, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.InvalidateAllUserSessions(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 0 {
		t.Errorf("expected 0 invalidated sessions, got %d", affected)
	}
}

func TestListActiveSessions(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	expiry := time.Now().Add(time.Hour)
	rows := sqlmock.NewRows(sessionColumns).
		AddRow(uuid.New(), int64(1), "hash-a", expiry, "browser-a", true, time.Now()).
		AddRow(uuid.New(), int64(1), "hash-b", expiry, "browser-b", true, time.Now().Add(-time.Minute))

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WillReturnRows(rows)

	sessions, err := repo.ListActiveSessions(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	cutoff := time.Now().Add(-24 * time.Hour)
	mock.ExpectExec("DELETE FROM sessions").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	deleted, err := repo.DeleteExpiredSessions(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 12 {
		t.Errorf("expected 12 deleted rows, got %d", deleted)
	}
}
