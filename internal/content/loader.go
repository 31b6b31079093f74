package content

import (
	"context"
	"errors"
	"sync"
	"time"

	"wordsteady/internal/logger"
	"wordsteady/internal/models"
)

// fallbackTTL bounds how long a failed fetch is answered from the fallback
// pack before the source is tried again
const fallbackTTL = time.Minute

type fallbackEntry struct {
	pack  *models.Pack
	until time.Time
}

// Loader fetches, normalizes and caches the pack for each day
type Loader struct {
	source   Source
	location *time.Location
	now      func() time.Time

	mu        sync.Mutex
	cache     map[string]*models.Pack
	fallbacks map[string]fallbackEntry
}

// NewLoader creates a loader over source. Dates without an explicit value
// resolve to the current day in loc.
func NewLoader(source Source, loc *time.Location) *Loader {
	if loc == nil {
		loc = time.Local
	}
	return &Loader{
		source:    source,
		location:  loc,
		now:       time.Now,
		cache:     make(map[string]*models.Pack),
		fallbacks: make(map[string]fallbackEntry),
	}
}

// Today returns the current calendar date as YYYY-MM-DD
func (l *Loader) Today() string {
	return l.now().In(l.location).Format(time.DateOnly)
}

// Day returns the calendar day a pack request refers to. Invalid or empty
// dates mean today.
func (l *Loader) Day(date string) time.Time {
	if ValidDate(date) {
		if t, err := time.ParseInLocation(time.DateOnly, date, l.location); err == nil {
			return t
		}
	}
	return l.now().In(l.location)
}

// Load returns the pack for date ("" or malformed means today).
//
// A fetch or decode failure yields the built-in fallback pack with no error.
// The source is not asked again for that date until fallbackTTL has passed.
// A document that decodes but is invalid yields the partially normalized
// pack and an error wrapping ErrInvalidPack; callers show the content error
// state and start no session.
func (l *Loader) Load(ctx context.Context, date string) (*models.Pack, error) {
	requested := date
	if !ValidDate(date) {
		requested = ""
	}
	key := requested
	if key == "" {
		key = "today:" + l.Today()
	}

	l.mu.Lock()
	cached, ok := l.cache[key]
	fb, fbOK := l.fallbacks[key]
	l.mu.Unlock()
	if ok {
		return cached, nil
	}
	if fbOK && l.now().Before(fb.until) {
		return fb.pack, nil
	}

	data, err := l.source.Fetch(ctx, requested)
	if err != nil {
		logger.Warn("content fetch failed, serving fallback pack", "date", requested, "err", err)
		return l.fallback(key), nil
	}

	pack, err := Parse(data)
	if err != nil {
		if errors.Is(err, ErrInvalidPack) {
			logger.Error("content pack rejected", "date", requested, "err", err)
			return pack, err
		}
		logger.Warn("content decode failed, serving fallback pack", "date", requested, "err", err)
		return l.fallback(key), nil
	}

	for _, w := range Lint(pack) {
		logger.Warn("content pack warning", "word", pack.Word, "warning", w)
	}
	logger.Info("content pack loaded", "date", requested, "word", pack.Word, "id", pack.ID)

	l.mu.Lock()
	l.cache[key] = pack
	delete(l.fallbacks, key)
	l.mu.Unlock()
	return pack, nil
}

// fallback returns the fallback pack and remembers it for key until
// fallbackTTL has passed
func (l *Loader) fallback(key string) *models.Pack {
	pack := Fallback(l.Today())
	l.mu.Lock()
	l.fallbacks[key] = fallbackEntry{pack: pack, until: l.now().Add(fallbackTTL)}
	l.mu.Unlock()
	return pack
}
