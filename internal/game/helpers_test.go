package game

import (
	"math/rand"
	"testing"

	"wordsteady/internal/models"
)

func steadfastPack() *models.Pack {
	clause := []models.FormTag{models.FormClause}
	return &models.Pack{
		ID:          "test",
		Word:        "STEADFAST",
		Display:     "Steadfast",
		Meaning:     "firm and reliable in purpose, loyalty, or belief",
		Example:     "She remained steadfast during the crisis.",
		Minutes:     6,
		Step3Target: 2,
		Starters: []models.Starter{
			{Text: "She remained steadfast when ", Accepts: clause, Tense: models.TensePast},
			{Text: "I try to be steadfast when ", Accepts: clause, Tense: models.TensePresent},
			{Text: "He stayed steadfast despite ", Accepts: []models.FormTag{models.FormGerund}},
			{Text: "They were steadfast in their ", Accepts: []models.FormTag{models.FormNounPhrase}},
			{Text: "A steadfast person will ", Accepts: []models.FormTag{models.FormVerbPhrase}},
		},
		Finishers: []models.Finisher{
			{Text: "things get difficult.", Form: models.FormClause, Tense: models.TensePresent},
			{Text: "others change their minds.", Form: models.FormClause, Tense: models.TensePresent},
			{Text: "things got difficult.", Form: models.FormClause, Tense: models.TensePast},
			{Text: "others changed their minds.", Form: models.FormClause, Tense: models.TensePast},
			{Text: "the pressure increasing.", Form: models.FormGerund},
			{Text: "beliefs.", Form: models.FormNounPhrase},
			{Text: "stand firm.", Form: models.FormVerbPhrase},
		},
	}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// spell places bank tiles so the slots read seq, one letter at a time
func spell(t *testing.T, pack *models.Pack, rec models.SessionRecord, seq []string, rng *rand.Rand) models.SessionRecord {
	t.Helper()
	for _, letter := range seq {
		tile := -1
		for i, b := range rec.BankLetters {
			if b == letter {
				tile = i
				break
			}
		}
		if tile < 0 {
			t.Fatalf("no tile %q left in bank %v", letter, rec.BankLetters)
		}
		rec = Apply(pack, rec, PlaceLetter(tile, 0), rng)
	}
	return rec
}

// solved returns a record that has just completed the spelling stage
func solved(t *testing.T, pack *models.Pack, rng *rand.Rand) models.SessionRecord {
	t.Helper()
	rec := Apply(pack, models.SessionRecord{}, Reveal(), rng)
	rec = spell(t, pack, rec, letters(pack.Word), rng)
	if !rec.Step2Done {
		t.Fatalf("spelling %s did not complete stage 2", pack.Word)
	}
	return rec
}

func optionIndex(rec models.SessionRecord, text string) int {
	for i, o := range rec.Options {
		if o.Finisher.Text == text {
			return i
		}
	}
	return -1
}

func optionOfKind(rec models.SessionRecord, kind models.OptionKind) int {
	for i, o := range rec.Options {
		if o.Kind == kind {
			return i
		}
	}
	return -1
}

type memStore struct {
	records map[string]models.SessionRecord
	saves   int
	deletes int
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]models.SessionRecord)}
}

func (s *memStore) Load(key string) (models.SessionRecord, bool) {
	rec, ok := s.records[key]
	return rec.Clone(), ok
}

func (s *memStore) Save(key string, rec models.SessionRecord) {
	s.saves++
	s.records[key] = rec.Clone()
}

func (s *memStore) Delete(key string) {
	s.deletes++
	delete(s.records, key)
}
