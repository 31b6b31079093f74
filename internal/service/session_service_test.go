package service

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"wordsteady/internal/content"
	"wordsteady/internal/database"
	"wordsteady/internal/game"
	"wordsteady/internal/logger"
	"wordsteady/internal/models"
	"wordsteady/internal/repository"
)

var _ game.Store = (*SessionStore)(nil)

type fakeRepo struct {
	states     map[string]models.SessionState
	failing    bool
	purgedDay  string
	deleteHits int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{states: make(map[string]models.SessionState)}
}

var errUnavailable = errors.New("storage unavailable")

func (f *fakeRepo) id(learnerID, key string) string { return learnerID + "|" + key }

func (f *fakeRepo) Get(ctx context.Context, learnerID, key string) (*models.SessionState, error) {
	if f.failing {
		return nil, errUnavailable
	}
	st, ok := f.states[f.id(learnerID, key)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &st, nil
}

func (f *fakeRepo) Put(ctx context.Context, state *models.SessionState) error {
	if f.failing {
		return errUnavailable
	}
	f.states[f.id(state.LearnerID, state.Key)] = *state
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, learnerID, key string) error {
	f.deleteHits++
	if f.failing {
		return errUnavailable
	}
	delete(f.states, f.id(learnerID, key))
	return nil
}

func (f *fakeRepo) DeleteBefore(ctx context.Context, day string) (int64, error) {
	f.purgedDay = day
	var n int64
	for k, st := range f.states {
		if st.Day < day {
			delete(f.states, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]models.SessionState, error) {
	var out []models.SessionState
	for _, st := range f.states {
		out = append(out, st)
	}
	return out, nil
}

func (f *fakeRepo) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(f.states))
	f.states = make(map[string]models.SessionState)
	return n, nil
}

func day(s string) time.Time {
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStorageKey(t *testing.T) {
	first := StorageKey(day("2024-05-01"), "STEADFAST")
	second := StorageKey(day("2024-05-02"), "STEADFAST")

	if first != "ws-play-2024-05-01-STEADFAST" {
		t.Errorf("StorageKey() = %q", first)
	}
	if first == second {
		t.Error("keys for different days must differ")
	}
	if StorageKey(day("2024-05-01"), "CALM") == first {
		t.Error("keys for different words must differ")
	}
}

func TestStorageKeyUsesLocalDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 20:00 UTC on May 1st is already May 2nd in Tokyo
	instant := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	if got := StorageKey(instant.In(tokyo), "STEADFAST"); got != "ws-play-2024-05-02-STEADFAST" {
		t.Errorf("StorageKey() = %q", got)
	}
}

func TestSessionStoreRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSessionService(repo)
	store := svc.Store(context.Background(), "learner", day("2024-05-01"), "STEADFAST")
	key := StorageKey(day("2024-05-01"), "STEADFAST")

	if _, ok := store.Load(key); ok {
		t.Fatal("empty store should report no saved state")
	}

	pick := 2
	rec := models.SessionRecord{
		Started:     true,
		SlotLetters: []string{"S", "", ""},
		BankLetters: []string{"T", "E"},
		StarterPick: &pick,
		Options:     []models.Option{{Finisher: models.Finisher{Text: "x.", Form: models.FormVerbPhrase}, Kind: models.OptionCorrect}},
	}
	store.Save(key, rec)

	got, ok := store.Load(key)
	if !ok {
		t.Fatal("saved record should load")
	}
	if !got.Started || got.Built() != "S" || got.StarterPick == nil || *got.StarterPick != 2 || len(got.Options) != 1 {
		t.Errorf("Load() = %+v", got)
	}

	stored := repo.states[repo.id("learner", key)]
	if stored.Day != "2024-05-01" || stored.Word != "STEADFAST" {
		t.Errorf("stored row metadata = %+v", stored)
	}

	store.Delete(key)
	if _, ok := store.Load(key); ok {
		t.Error("deleted record should not load")
	}
}

func TestSessionStoreSwallowsFailures(t *testing.T) {
	repo := newFakeRepo()
	repo.failing = true
	store := NewSessionService(repo).Store(context.Background(), "learner", day("2024-05-01"), "STEADFAST")

	store.Save("k", models.SessionRecord{Started: true})
	store.Delete("k")
	if _, ok := store.Load("k"); ok {
		t.Error("failing storage should report no saved state")
	}
	if repo.deleteHits != 1 {
		t.Error("delete should still be attempted")
	}
}

func TestSessionStoreCorruptPayload(t *testing.T) {
	repo := newFakeRepo()
	repo.states[repo.id("learner", "k")] = models.SessionState{LearnerID: "learner", Key: "k", Payload: "{not json"}
	store := NewSessionService(repo).Store(context.Background(), "learner", day("2024-05-01"), "STEADFAST")

	if _, ok := store.Load("k"); ok {
		t.Error("corrupt payload should be treated as no saved state")
	}
}

func TestNewDayDoesNotReuseRecord(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSessionService(repo)
	pack := content.Fallback("2024-05-01")
	rng := rand.New(rand.NewSource(1))

	d1 := day("2024-05-01")
	m1 := game.NewMachine(pack, svc.Store(context.Background(), "learner", d1, pack.Word), StorageKey(d1, pack.Word), rng)
	m1.Dispatch(game.Reveal())
	if !m1.Record().Started {
		t.Fatal("reveal should start the day 1 session")
	}

	d2 := day("2024-05-02")
	m2 := game.NewMachine(pack, svc.Store(context.Background(), "learner", d2, pack.Word), StorageKey(d2, pack.Word), rng)
	if m2.Record().Started {
		t.Error("day 2 must not resume day 1's record")
	}

	again := game.NewMachine(pack, svc.Store(context.Background(), "learner", d1, pack.Word), StorageKey(d1, pack.Word), rng)
	if !again.Record().Started {
		t.Error("reloading day 1 should resume its record")
	}
}

func TestPurge(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSessionService(repo)
	for _, d := range []string{"2024-04-29", "2024-04-30", "2024-05-01"} {
		store := svc.Store(context.Background(), "learner", day(d), "STEADFAST")
		store.Save(StorageKey(day(d), "STEADFAST"), models.SessionRecord{Started: true})
	}

	var buf bytes.Buffer
	original := logger.Logger
	logger.Logger = log.New(&buf)
	defer func() { logger.Logger = original }()

	n, err := svc.Purge(context.Background(), day("2024-05-01"))
	if err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	if n != 2 || repo.purgedDay != "2024-05-01" {
		t.Errorf("Purge() removed %d before %s", n, repo.purgedDay)
	}
	if buf.Len() != 0 {
		t.Errorf("Purge() should leave info logging to its caller, got %q", buf.String())
	}
	if len(repo.states) != 1 {
		t.Errorf("expected today's record to survive, have %d", len(repo.states))
	}
}

func TestLockReleases(t *testing.T) {
	svc := NewSessionService(newFakeRepo())
	release := svc.Lock("learner", "key")
	release()

	done := make(chan struct{})
	go func() {
		svc.Lock("learner", "key")()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock was not released")
	}
}

func TestBackupRoundTrip(t *testing.T) {
	src := newFakeRepo()
	store := NewSessionService(src).Store(context.Background(), "learner", day("2024-05-01"), "STEADFAST")
	store.Save("ws-play-2024-05-01-STEADFAST", models.SessionRecord{Started: true, SlotLetters: []string{"", ""}})
	src.states["broken"] = models.SessionState{LearnerID: "x", Key: "broken", Payload: "{oops"}

	var buf bytes.Buffer
	n, err := NewBackupService(src).ExportToWriter(context.Background(), &buf)
	if err != nil {
		t.Fatalf("ExportToWriter() error = %v", err)
	}
	if n != 1 {
		t.Errorf("exported %d sessions, want 1 (invalid payload skipped)", n)
	}
	if !strings.Contains(buf.String(), `"started": true`) {
		t.Errorf("payload should be embedded as JSON:\n%s", buf.String())
	}

	dst := newFakeRepo()
	dst.states["old"] = models.SessionState{Key: "old"}
	n, err = NewBackupService(dst).ImportFromReader(context.Background(), &buf, true)
	if err != nil {
		t.Fatalf("ImportFromReader() error = %v", err)
	}
	if n != 1 || len(dst.states) != 1 {
		t.Errorf("imported %d, have %d states", n, len(dst.states))
	}

	restored := NewSessionService(dst).Store(context.Background(), "learner", day("2024-05-01"), "STEADFAST")
	if rec, ok := restored.Load("ws-play-2024-05-01-STEADFAST"); !ok || !rec.Started {
		t.Error("imported session should load")
	}
}

func TestImportRejectsUnknownVersion(t *testing.T) {
	_, err := NewBackupService(newFakeRepo()).ImportFromReader(context.Background(), strings.NewReader(`{"version":"9"}`), false)
	if err == nil {
		t.Error("expected an error for an unknown version")
	}
}

func TestSessionStoreSQLite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "service.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	svc := NewSessionService(repository.NewSessionRepository(db))
	pack := content.Fallback("2024-05-01")
	d := day("2024-05-01")
	key := StorageKey(d, pack.Word)

	m := game.NewMachine(pack, svc.Store(context.Background(), "learner", d, pack.Word), key, rand.New(rand.NewSource(3)))
	m.Dispatch(game.Reveal())
	m.Dispatch(game.PlaceLetter(0, 0))

	resumed := game.NewMachine(pack, svc.Store(context.Background(), "learner", d, pack.Word), key, rand.New(rand.NewSource(4)))
	if resumed.Record().Built() != m.Record().Built() {
		t.Errorf("resumed slots %q, want %q", resumed.Record().Built(), m.Record().Built())
	}

	resumed.Dispatch(game.StartOver())
	fresh := game.NewMachine(pack, svc.Store(context.Background(), "learner", d, pack.Word), key, rand.New(rand.NewSource(5)))
	if fresh.Record().Started {
		t.Error("start over should delete the stored record")
	}
}
