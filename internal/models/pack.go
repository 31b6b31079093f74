package models

import "strings"

// FormTag is the syntactic form a finisher takes, or a starter accepts
type FormTag string

const (
	FormClause     FormTag = "CLAUSE"
	FormGerund     FormTag = "GERUND"
	FormNounPhrase FormTag = "NOUN_PHRASE"
	FormVerbPhrase FormTag = "VP"
)

// AllForms lists every form tag in a stable order
var AllForms = []FormTag{FormClause, FormGerund, FormNounPhrase, FormVerbPhrase}

// ParseFormTag returns the form tag for s, or false if s names no known form
func ParseFormTag(s string) (FormTag, bool) {
	tag := FormTag(strings.ToUpper(strings.TrimSpace(s)))
	for _, f := range AllForms {
		if f == tag {
			return f, true
		}
	}
	return "", false
}

// Tense is the finite tense carried by a clause. The zero value means no tense.
type Tense string

const (
	TenseNone    Tense = ""
	TensePast    Tense = "PAST"
	TensePresent Tense = "PRESENT"
)

// ParseTense normalizes s; anything unrecognized is TenseNone
func ParseTense(s string) Tense {
	switch Tense(strings.ToUpper(strings.TrimSpace(s))) {
	case TensePast:
		return TensePast
	case TensePresent:
		return TensePresent
	default:
		return TenseNone
	}
}

// Opposite returns the other finite tense, or TenseNone when t has none
func (t Tense) Opposite() Tense {
	switch t {
	case TensePast:
		return TensePresent
	case TensePresent:
		return TensePast
	default:
		return TenseNone
	}
}

// Starter is the opening fragment of a sentence
type Starter struct {
	Text    string    `json:"text"`
	Accepts []FormTag `json:"accepts"`
	Tense   Tense     `json:"tense,omitempty"`
}

// AcceptsForm reports whether f is one of the starter's accepted forms
func (s Starter) AcceptsForm(f FormTag) bool {
	for _, a := range s.Accepts {
		if a == f {
			return true
		}
	}
	return false
}

// Finisher is the closing fragment of a sentence
type Finisher struct {
	Text  string  `json:"text"`
	Form  FormTag `json:"form"`
	Tense Tense   `json:"tense,omitempty"`
}

// TextKey is the comparison key used to deduplicate finishers
func (f Finisher) TextKey() string {
	return strings.ToLower(strings.TrimSpace(f.Text))
}

// Pack is the immutable content payload for one day
type Pack struct {
	ID          string
	Word        string
	Display     string
	Meaning     string
	Example     string
	Minutes     int
	Step3Target int
	Starters    []Starter
	Finishers   []Finisher

	// Fallback is set when the built-in pack replaced a failed fetch
	Fallback bool
}
