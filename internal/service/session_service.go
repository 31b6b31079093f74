package service

import (
	"context"
	"encoding/json"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"wordsteady/internal/logger"
	"wordsteady/internal/models"
	"wordsteady/internal/repository"
)

const (
	storageKeyPrefix = "ws-play-"
	storeTimeout     = 5 * time.Second
	lockStripes      = 64
)

// StorageKey is the key of the session record for word on the calendar day
// of day, in day's own location
func StorageKey(day time.Time, word string) string {
	return storageKeyPrefix + day.Format(time.DateOnly) + "-" + word
}

// SessionRepo is the storage the session service persists through
type SessionRepo interface {
	Get(ctx context.Context, learnerID, key string) (*models.SessionState, error)
	Put(ctx context.Context, state *models.SessionState) error
	Delete(ctx context.Context, learnerID, key string) error
	DeleteBefore(ctx context.Context, day string) (int64, error)
}

// SessionService hands out per-learner session stores and purges old days
type SessionService struct {
	repo  SessionRepo
	locks [lockStripes]sync.Mutex
}

// NewSessionService creates a new session service
func NewSessionService(repo SessionRepo) *SessionService {
	return &SessionService{repo: repo}
}

// Store returns the store for one learner's session on day. Failures inside
// the store are logged and swallowed.
func (s *SessionService) Store(ctx context.Context, learnerID string, day time.Time, word string) *SessionStore {
	return &SessionStore{
		ctx:       ctx,
		repo:      s.repo,
		learnerID: learnerID,
		day:       day.Format(time.DateOnly),
		word:      word,
	}
}

// Lock serializes work on one learner's key. The returned func releases it.
// Keys share a fixed set of mutexes, so unrelated keys may occasionally wait
// on each other.
func (s *SessionService) Lock(learnerID, key string) func() {
	h := fnv.New32a()
	h.Write([]byte(learnerID))
	h.Write([]byte{0})
	h.Write([]byte(key))
	mu := &s.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

// Purge deletes every stored session whose day is before the calendar day
// of before. Records of past days are never read again once the key changes.
func (s *SessionService) Purge(ctx context.Context, before time.Time) (int64, error) {
	day := before.Format(time.DateOnly)
	n, err := s.repo.DeleteBefore(ctx, day)
	if err != nil {
		return 0, err
	}
	logger.Debug("purged session states", "before", day, "count", n)
	return n, nil
}

// SessionStore persists one learner's session records. It satisfies the
// engine's Store interface.
type SessionStore struct {
	ctx       context.Context
	repo      SessionRepo
	learnerID string
	day       string
	word      string
}

// Load reads and decodes the record under key. Missing, unreadable or
// corrupt records all report no saved state.
func (s *SessionStore) Load(key string) (models.SessionRecord, bool) {
	ctx, cancel := context.WithTimeout(s.ctx, storeTimeout)
	defer cancel()

	state, err := s.repo.Get(ctx, s.learnerID, key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Warn("session load failed", "key", key, "err", err)
		}
		return models.SessionRecord{}, false
	}

	var rec models.SessionRecord
	if err := json.Unmarshal([]byte(state.Payload), &rec); err != nil {
		logger.Warn("discarding corrupt session state", "key", key, "err", err)
		return models.SessionRecord{}, false
	}
	return rec, true
}

// Save encodes and writes rec under key
func (s *SessionStore) Save(key string, rec models.SessionRecord) {
	payload, err := json.Marshal(rec)
	if err != nil {
		logger.Warn("session encode failed", "key", key, "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, storeTimeout)
	defer cancel()

	err = s.repo.Put(ctx, &models.SessionState{
		LearnerID: s.learnerID,
		Key:       key,
		Day:       s.day,
		Word:      s.word,
		Payload:   string(payload),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Warn("session save failed", "key", key, "err", err)
		return
	}
	logger.Debug("session saved", "key", key)
}

// Delete removes the record under key
func (s *SessionStore) Delete(key string) {
	ctx, cancel := context.WithTimeout(s.ctx, storeTimeout)
	defer cancel()

	if err := s.repo.Delete(ctx, s.learnerID, key); err != nil {
		logger.Warn("session delete failed", "key", key, "err", err)
	}
}
