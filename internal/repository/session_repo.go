package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wordsteady/internal/database"
	"wordsteady/internal/models"
)

// ErrNotFound is returned when no session state exists for a key
var ErrNotFound = errors.New("session state not found")

// SessionRepository stores one serialized session record per learner and key
type SessionRepository struct {
	db database.DBTX
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db database.DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

// Get retrieves the state stored under key for learnerID
func (r *SessionRepository) Get(ctx context.Context, learnerID, key string) (*models.SessionState, error) {
	query := `
		SELECT learner_id, state_key, day, word, payload, updated_at
		FROM session_states
		WHERE learner_id = ? AND state_key = ?
	`
	state := &models.SessionState{}
	err := r.db.QueryRowContext(ctx, query, learnerID, key).Scan(
		&state.LearnerID,
		&state.Key,
		&state.Day,
		&state.Word,
		&state.Payload,
		&state.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session state: %w", err)
	}
	return state, nil
}

// Put inserts or replaces a state
func (r *SessionRepository) Put(ctx context.Context, state *models.SessionState) error {
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now().UTC()
	}
	query := r.db.GetDialect().UpsertSessionStateQuery()
	_, err := r.db.ExecContext(ctx, query,
		state.LearnerID,
		state.Key,
		state.Day,
		state.Word,
		state.Payload,
		state.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to put session state: %w", err)
	}
	return nil
}

// Delete removes the state stored under key. Deleting a missing key is not an error.
func (r *SessionRepository) Delete(ctx context.Context, learnerID, key string) error {
	query := "DELETE FROM session_states WHERE learner_id = ? AND state_key = ?"
	if _, err := r.db.ExecContext(ctx, query, learnerID, key); err != nil {
		return fmt.Errorf("failed to delete session state: %w", err)
	}
	return nil
}

// DeleteBefore removes every state whose day is earlier than day (YYYY-MM-DD)
// and returns how many rows went
func (r *SessionRepository) DeleteBefore(ctx context.Context, day string) (int64, error) {
	query := "DELETE FROM session_states WHERE day < ?"
	result, err := r.db.ExecContext(ctx, query, day)
	if err != nil {
		return 0, fmt.Errorf("failed to purge session states: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged session states: %w", err)
	}
	return n, nil
}

// CountByDay returns the number of stored states per day
func (r *SessionRepository) CountByDay(ctx context.Context) (map[string]int, error) {
	query := "SELECT day, COUNT(*) FROM session_states GROUP BY day"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count session states: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("failed to scan session state count: %w", err)
		}
		counts[day] = n
	}
	return counts, rows.Err()
}

// List returns every stored state ordered by day, learner and key
func (r *SessionRepository) List(ctx context.Context) ([]models.SessionState, error) {
	query := `
		SELECT learner_id, state_key, day, word, payload, updated_at
		FROM session_states
		ORDER BY day, learner_id, state_key
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list session states: %w", err)
	}
	defer rows.Close()

	var states []models.SessionState
	for rows.Next() {
		var s models.SessionState
		if err := rows.Scan(&s.LearnerID, &s.Key, &s.Day, &s.Word, &s.Payload, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session state: %w", err)
		}
		states = append(states, s)
	}
	return states, rows.Err()
}

// DeleteAll removes every stored state
func (r *SessionRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM session_states")
	if err != nil {
		return 0, fmt.Errorf("failed to clear session states: %w", err)
	}
	return result.RowsAffected()
}
