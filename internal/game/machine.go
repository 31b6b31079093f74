package game

import (
	"wordsteady/internal/grammar"
	"wordsteady/internal/models"
)

// Store persists one session record per key. Implementations swallow their
// own failures: a failed Load reports no saved state, a failed Save or Delete
// leaves the session running in memory.
type Store interface {
	Load(key string) (models.SessionRecord, bool)
	Save(key string, rec models.SessionRecord)
	Delete(key string)
}

// Machine owns the session record for one pack and one storage key
type Machine struct {
	pack  *models.Pack
	rec   models.SessionRecord
	rng   grammar.Rand
	store Store
	key   string
	saved bool
}

// NewMachine restores any saved record for key and returns a machine ready
// for input. A restored record is reported as saved.
func NewMachine(pack *models.Pack, store Store, key string, rng grammar.Rand) *Machine {
	m := &Machine{
		pack:  pack,
		rng:   rng,
		store: store,
		key:   key,
	}
	if saved, ok := store.Load(key); ok {
		if rec, valid := Restore(pack, saved); valid {
			m.rec = rec
			m.saved = true
		}
	}
	return m
}

// Dispatch applies action, persists the result and returns the new view
func (m *Machine) Dispatch(action Action) View {
	m.rec = Apply(m.pack, m.rec, action, m.rng)

	if action.Type == ActionStartOver {
		m.store.Delete(m.key)
		m.saved = false
	} else {
		m.store.Save(m.key, m.rec)
		m.saved = true
	}
	return m.View()
}

// View projects the current record
func (m *Machine) View() View {
	v := Project(m.pack, m.rec)
	v.Saved = m.saved
	return v
}

// Record returns a copy of the current record
func (m *Machine) Record() models.SessionRecord {
	return m.rec.Clone()
}

// Pack returns the pack the machine was built for
func (m *Machine) Pack() *models.Pack {
	return m.pack
}

// Key returns the storage key of this session
func (m *Machine) Key() string {
	return m.key
}
