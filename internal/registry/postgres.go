// internal/registry/postgres.go
package registry

import (
	"context"
	"database/sql"
	goerrors "errors"
	"fmt"

	"activities-service/internal/common/errors"
	"activities-service/internal/models"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code raised by the signups
// (activity_name, email) unique constraint.
const uniqueViolation = "23505"

// PostgresStore keeps the catalog in an activities table and rosters in a
// signups table. Roster order is the insertion order of signup rows, and
// the unique constraint makes duplicate signups race-safe without locking.
type PostgresStore struct {
	db   *sql.DB
	opts Options
}

func NewPostgresStore(db *sql.DB, opts Options) *PostgresStore {
	return &PostgresStore{db: db, opts: opts}
}

// EnsureSchema creates the tables if they do not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS activities (
			name TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			schedule TEXT NOT NULL,
			max_participants INT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS signups (
			id BIGSERIAL PRIMARY KEY,
			activity_name TEXT NOT NULL REFERENCES activities(name),
			email TEXT NOT NULL,
			UNIQUE (activity_name, email)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Seed inserts the catalog and initial rosters, skipping rows that already
// exist so restarts keep accumulated signups.
func (s *PostgresStore) Seed(ctx context.Context, seed models.Registry) error {
	for name, act := range seed {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO activities (name, description, schedule, max_participants)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO NOTHING`,
			name, act.Description, act.Schedule, act.MaxParticipants,
		)
		if err != nil {
			return errors.NewStoreUnavailableError(fmt.Sprintf("seed activity %q: %v", name, err))
		}
		for _, email := range act.Participants {
			_, err := s.db.ExecContext(ctx, `
				INSERT INTO signups (activity_name, email)
				VALUES ($1, $2)
				ON CONFLICT (activity_name, email) DO NOTHING`,
				name, email,
			)
			if err != nil {
				return errors.NewStoreUnavailableError(fmt.Sprintf("seed roster %q: %v", name, err))
			}
		}
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) (models.Registry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, description, schedule, max_participants
		FROM activities`)
	if err != nil {
		return nil, errors.NewStoreUnavailableError(fmt.Sprintf("list activities: %v", err))
	}
	defer rows.Close()

	out := models.Registry{}
	for rows.Next() {
		var name string
		var act models.Activity
		if err := rows.Scan(&name, &act.Description, &act.Schedule, &act.MaxParticipants); err != nil {
			return nil, errors.NewStoreUnavailableError(fmt.Sprintf("scan activity: %v", err))
		}
		act.Participants = []string{}
		out[name] = act
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreUnavailableError(fmt.Sprintf("list activities: %v", err))
	}

	signupRows, err := s.db.QueryContext(ctx, `
		SELECT activity_name, email
		FROM signups
		ORDER BY id`)
	if err != nil {
		return nil, errors.NewStoreUnavailableError(fmt.Sprintf("list signups: %v", err))
	}
	defer signupRows.Close()

	for signupRows.Next() {
		var name, email string
		if err := signupRows.Scan(&name, &email); err != nil {
			return nil, errors.NewStoreUnavailableError(fmt.Sprintf("scan signup: %v", err))
		}
		if act, ok := out[name]; ok {
			act.Participants = append(act.Participants, email)
			out[name] = act
		}
	}
	if err := signupRows.Err(); err != nil {
		return nil, errors.NewStoreUnavailableError(fmt.Sprintf("list signups: %v", err))
	}

	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, activity string) (models.Activity, error) {
	var act models.Activity
	err := s.db.QueryRowContext(ctx, `
		SELECT description, schedule, max_participants
		FROM activities
		WHERE name = $1`, activity).
		Scan(&act.Description, &act.Schedule, &act.MaxParticipants)
	if goerrors.Is(err, sql.ErrNoRows) {
		return models.Activity{}, errors.NewActivityNotFoundError(activity)
	}
	if err != nil {
		return models.Activity{}, errors.NewStoreUnavailableError(fmt.Sprintf("get %q: %v", activity, err))
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT email
		FROM signups
		WHERE activity_name = $1
		ORDER BY id`, activity)
	if err != nil {
		return models.Activity{}, errors.NewStoreUnavailableError(fmt.Sprintf("roster %q: %v", activity, err))
	}
	defer rows.Close()

	act.Participants = []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return models.Activity{}, errors.NewStoreUnavailableError(fmt.Sprintf("scan roster: %v", err))
		}
		act.Participants = append(act.Participants, email)
	}
	if err := rows.Err(); err != nil {
		return models.Activity{}, errors.NewStoreUnavailableError(fmt.Sprintf("roster %q: %v", activity, err))
	}
	return act, nil
}

func (s *PostgresStore) Signup(ctx context.Context, activity, email string) error {
	var maxParticipants int
	err := s.db.QueryRowContext(ctx, `
		SELECT max_participants
		FROM activities
		WHERE name = $1`, activity).Scan(&maxParticipants)
	if goerrors.Is(err, sql.ErrNoRows) {
		return errors.NewActivityNotFoundError(activity)
	}
	if err != nil {
		return errors.NewStoreUnavailableError(fmt.Sprintf("lookup %q: %v", activity, err))
	}

	if s.opts.EnforceCapacity && maxParticipants > 0 {
		// Duplicate check comes first so a repeat signup to a full
		// activity reports ALREADY_REGISTERED, matching the other
		// backends. Without enforcement the unique constraint covers it.
		var already bool
		err := s.db.QueryRowContext(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM signups
				WHERE activity_name = $1 AND email = $2
			)`, activity, email).Scan(&already)
		if err != nil {
			return errors.NewStoreUnavailableError(fmt.Sprintf("duplicate check %q: %v", activity, err))
		}
		if already {
			return errors.NewAlreadyRegisteredError(activity, email)
		}

		var count int
		err = s.db.QueryRowContext(ctx, `
			SELECT COUNT(*)
			FROM signups
			WHERE activity_name = $1`, activity).Scan(&count)
		if err != nil {
			return errors.NewStoreUnavailableError(fmt.Sprintf("roster count %q: %v", activity, err))
		}
		if count >= maxParticipants {
			return errors.NewActivityFullError(activity, maxParticipants)
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO signups (activity_name, email)
		VALUES ($1, $2)`, activity, email)
	if err != nil {
		var pqErr *pq.Error
		if goerrors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return errors.NewAlreadyRegisteredError(activity, email)
		}
		return errors.NewStoreUnavailableError(fmt.Sprintf("signup insert: %v", err))
	}
	return nil
}

func (s *PostgresStore) Unregister(ctx context.Context, activity, email string) error {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM activities WHERE name = $1)`, activity).Scan(&exists)
	if err != nil {
		return errors.NewStoreUnavailableError(fmt.Sprintf("lookup %q: %v", activity, err))
	}
	if !exists {
		return errors.NewActivityNotFoundError(activity)
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM signups
		WHERE activity_name = $1 AND email = $2`, activity, email)
	if err != nil {
		return errors.NewStoreUnavailableError(fmt.Sprintf("unregister delete: %v", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.NewStoreUnavailableError(fmt.Sprintf("unregister result: %v", err))
	}
	if affected == 0 {
		return errors.NewNotRegisteredError(activity, email)
	}
	return nil
}
