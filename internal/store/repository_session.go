package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/MKhiriev/tradeflix-auth/models"
	"github.com/google/uuid"
)

// sessionColumns is the canonical column list scanned by every session query.
var sessionColumns = []string{"session_id", "user_id", "token_hash", "expires_at", "user_agent", "is_valid", "created_at"}

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. One row exists per issued refresh secret; the
// conditional invalidation in [sessionRepository.InvalidateSession] is what
// makes refresh rotation race-safe.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession persists a new session row and returns it with the
// server-assigned created_at populated.
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	log := logger.FromContext(ctx)

	if session.SessionID == uuid.Nil {
		session.SessionID = uuid.New()
	}

	query, args, err := psql.
		Insert(session.TableName()).
		Columns("session_id", "user_id", "token_hash", "expires_at", "user_agent", "is_valid").
		Values(session.SessionID, session.UserID, session.TokenHash, session.ExpiresAt, session.UserAgent, true).
		Suffix("RETURNING " + strings.Join(sessionColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error: session was not created")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindSessionByTokenHash retrieves the session whose token_hash matches the
// given refresh-secret digest.
//
// Error handling:
//   - No matching row → [ErrNoSessionWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *sessionRepository) FindSessionByTokenHash(ctx context.Context, tokenHash string) (models.Session, error) {
	query, args, err := psql.
		Select(sessionColumns...).
		From("sessions").
		Where(sq.Eq{"token_hash": tokenHash}).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findSession(ctx, query, args...)
}

// FindSessionByID retrieves a session by identifier, scoped to its owner so
// one user cannot inspect or revoke another user's sessions.
func (r *sessionRepository) FindSessionByID(ctx context.Context, sessionID uuid.UUID, userID int64) (models.Session, error) {
	query, args, err := psql.
		Select(sessionColumns...).
		From("sessions").
		Where(sq.Eq{"session_id": sessionID, "user_id": userID}).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findSession(ctx, query, args...)
}

// InvalidateSession conditionally flips is_valid to false.
//
// The WHERE clause includes is_valid = TRUE, so when two requests race to
// rotate the same refresh secret the database guarantees exactly one UPDATE
// affects a row. The loser observes zero affected rows and receives
// [ErrSessionAlreadyInvalid]; the refresh flow maps that to the
// invalid-refresh-token failure. A session that does not exist at all yields
// [ErrNoSessionWasFound] semantics only at lookup time — here both absent
// and already-invalid collapse into [ErrSessionAlreadyInvalid], which is all
// rotation needs to know.
func (r *sessionRepository) InvalidateSession(ctx context.Context, sessionID uuid.UUID) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Update("sessions").
		Set("is_valid", false).
		Where(sq.Eq{"session_id": sessionID, "is_valid": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.InvalidateSession").Msg("error: session invalidation failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrSessionAlreadyInvalid
	}

	return nil
}

// InvalidateAllUserSessions flips is_valid to false for every valid session
// of the given user and returns how many rows were affected. A zero count is
// not an error: the user may simply have no live sessions.
func (r *sessionRepository) InvalidateAllUserSessions(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Update("sessions").
		Set("is_valid", false).
		Where(sq.Eq{"user_id": userID, "is_valid": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.InvalidateAllUserSessions").Msg("error: bulk invalidation failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	log.Info().Int64("user_id", userID).Int64("invalidated", affected).Msg("invalidated all user sessions")
	return affected, nil
}

// ListActiveSessions returns the user's valid, unexpired sessions ordered
// newest first.
func (r *sessionRepository) ListActiveSessions(ctx context.Context, userID int64) ([]models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select(sessionColumns...).
		From("sessions").
		Where(sq.Eq{"user_id": userID, "is_valid": true}).
		Where(sq.Gt{"expires_at": time.Now()}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.ListActiveSessions").Msg("error: session listing failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		var session models.Session
		if err := rows.Scan(
			&session.SessionID,
			&session.UserID,
			&session.TokenHash,
			&session.ExpiresAt,
			&session.UserAgent,
			&session.IsValid,
			&session.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return sessions, nil
}

// DeleteExpiredSessions removes every session row whose expiry is before the
// given cutoff, regardless of validity. Invoked by the background sweeper,
// never on the request path.
func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context, expiredBefore time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Delete("sessions").
		Where(sq.Lt{"expires_at": expiredBefore}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteExpiredSessions").Msg("error: session purge failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return affected, nil
}

// findSession runs a single-row session query and normalises its errors.
func (r *sessionRepository) findSession(ctx context.Context, query string, args ...any) (models.Session, error) {
	log := logger.FromContext(ctx)

	session, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrNoSessionWasFound
		}

		log.Err(err).Str("func", "*sessionRepository.findSession").Msg("error: session lookup failed")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return session, nil
}

func scanSession(row *sql.Row) (models.Session, error) {
	var session models.Session
	if err := row.Scan(
		&session.SessionID,
		&session.UserID,
		&session.TokenHash,
		&session.ExpiresAt,
		&session.UserAgent,
		&session.IsValid,
		&session.CreatedAt,
	); err != nil {
		return models.Session{}, err
	}
	return session, nil
}
