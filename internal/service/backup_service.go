package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"wordsteady/internal/logger"
	"wordsteady/internal/models"
)

const backupVersion = "1.0"

// BackupData is the portable export of every stored session
type BackupData struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Sessions   []SessionBackup `json:"sessions"`
}

// SessionBackup is one session_states row. Payload stays raw JSON so the
// export is readable and round-trips byte for byte.
type SessionBackup struct {
	LearnerID string          `json:"learner_id"`
	Key       string          `json:"key"`
	Day       string          `json:"day"`
	Word      string          `json:"word"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BackupRepo is the storage the backup service reads and writes
type BackupRepo interface {
	List(ctx context.Context) ([]models.SessionState, error)
	Put(ctx context.Context, state *models.SessionState) error
	DeleteAll(ctx context.Context) (int64, error)
}

// BackupService exports and imports stored sessions, for moving between
// database backends
type BackupService struct {
	repo BackupRepo
}

// NewBackupService creates a new backup service
func NewBackupService(repo BackupRepo) *BackupService {
	return &BackupService{repo: repo}
}

// ExportToWriter writes every stored session to w as indented JSON
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) (int, error) {
	states, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to export sessions: %w", err)
	}

	backup := &BackupData{
		Version:    backupVersion,
		ExportedAt: time.Now().UTC(),
		Sessions:   make([]SessionBackup, 0, len(states)),
	}
	for _, st := range states {
		payload := json.RawMessage(st.Payload)
		if !json.Valid(payload) {
			logger.Warn("skipping session with invalid payload", "learner", st.LearnerID, "key", st.Key)
			continue
		}
		backup.Sessions = append(backup.Sessions, SessionBackup{
			LearnerID: st.LearnerID,
			Key:       st.Key,
			Day:       st.Day,
			Word:      st.Word,
			Payload:   payload,
			UpdatedAt: st.UpdatedAt,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return 0, fmt.Errorf("failed to encode backup: %w", err)
	}

	logger.Info("sessions exported", "count", len(backup.Sessions))
	return len(backup.Sessions), nil
}

// ImportFromReader upserts every session in the backup read from r. With
// replace set, existing sessions are deleted first.
func (s *BackupService) ImportFromReader(ctx context.Context, r io.Reader, replace bool) (int, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return 0, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return 0, fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	if replace {
		n, err := s.repo.DeleteAll(ctx)
		if err != nil {
			return 0, err
		}
		logger.Info("cleared existing sessions", "count", n)
	}

	imported := 0
	for _, sb := range backup.Sessions {
		err := s.repo.Put(ctx, &models.SessionState{
			LearnerID: sb.LearnerID,
			Key:       sb.Key,
			Day:       sb.Day,
			Word:      sb.Word,
			Payload:   string(sb.Payload),
			UpdatedAt: sb.UpdatedAt,
		})
		if err != nil {
			return imported, fmt.Errorf("failed to import session %s: %w", sb.Key, err)
		}
		imported++
	}

	logger.Info("sessions imported", "count", imported)
	return imported, nil
}
