package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"wordsteady/internal/grammar"
	"wordsteady/internal/models"
)

// ErrInvalidPack marks a document that decoded but cannot drive a session
var ErrInvalidPack = errors.New("invalid content pack")

const (
	defaultMinutes = 6
	defaultTarget  = 2
	placeholder    = "—"
	maxCount       = math.MaxInt32
)

type rawPack struct {
	Meta struct {
		ID      string      `json:"id"`
		Minutes json.Number `json:"minutes"`
	} `json:"meta"`
	Word struct {
		Text    string `json:"text"`
		Display string `json:"display"`
	} `json:"word"`
	Meaning     string        `json:"meaning"`
	Example     string        `json:"example"`
	Step3Target json.Number   `json:"step3Target"`
	Starters    []rawStarter  `json:"starters"`
	Finishes    []rawFinisher `json:"finishes"`
	Finishers   []rawFinisher `json:"finishers"`
}

type rawStarter struct {
	Text    string   `json:"text"`
	Accepts []string `json:"accepts"`
	Tense   string   `json:"tense"`
}

type rawFinisher struct {
	Text  string `json:"text"`
	Form  string `json:"form"`
	Tense string `json:"tense"`
}

// Parse decodes and normalizes a pack document. A decode failure is returned
// as is; a document that decodes but fails Validate returns the normalized
// pack together with an error wrapping ErrInvalidPack.
func Parse(data []byte) (*models.Pack, error) {
	var raw rawPack
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode pack: %w", err)
	}
	pack := normalize(raw)
	if err := Validate(pack); err != nil {
		return pack, err
	}
	return pack, nil
}

func normalize(raw rawPack) *models.Pack {
	word := strings.ToUpper(strings.TrimSpace(raw.Word.Text))

	display := strings.TrimSpace(raw.Word.Display)
	if display == "" {
		display = capitalize(word)
	}

	pack := &models.Pack{
		ID:          strings.TrimSpace(raw.Meta.ID),
		Word:        word,
		Display:     display,
		Meaning:     orPlaceholder(raw.Meaning),
		Example:     orPlaceholder(raw.Example),
		Minutes:     positiveOr(raw.Meta.Minutes, defaultMinutes),
		Step3Target: positiveOr(raw.Step3Target, defaultTarget),
	}

	for _, s := range raw.Starters {
		starter := models.Starter{Text: s.Text, Tense: models.ParseTense(s.Tense)}
		for _, a := range s.Accepts {
			if tag, ok := models.ParseFormTag(a); ok {
				starter.Accepts = append(starter.Accepts, tag)
			}
		}
		pack.Starters = append(pack.Starters, starter)
	}

	finishers := raw.Finishes
	if len(finishers) == 0 {
		finishers = raw.Finishers
	}
	for _, f := range finishers {
		form, ok := models.ParseFormTag(f.Form)
		if !ok {
			continue
		}
		pack.Finishers = append(pack.Finishers, models.Finisher{
			Text:  f.Text,
			Form:  form,
			Tense: models.ParseTense(f.Tense),
		})
	}

	return pack
}

// Validate checks the invariants a pack must hold before a session can start
func Validate(pack *models.Pack) error {
	var problems []string
	switch {
	case pack.Word == "":
		problems = append(problems, "word is empty")
	case !isWordToken(pack.Word):
		problems = append(problems, fmt.Sprintf("word %q must contain only letters and hyphens", pack.Word))
	}
	if len(pack.Starters) == 0 {
		problems = append(problems, "no starters")
	}
	if len(pack.Finishers) == 0 {
		problems = append(problems, "no finishers")
	}
	if pack.Step3Target < 1 {
		problems = append(problems, "step3Target must be at least 1")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPack, strings.Join(problems, "; "))
	}
	return nil
}

// Lint reports authoring problems that do not block a session but leave
// parts of it unplayable
func Lint(pack *models.Pack) []string {
	var warnings []string

	seen := make(map[string]bool, len(pack.Finishers))
	for _, f := range pack.Finishers {
		if seen[f.TextKey()] {
			warnings = append(warnings, fmt.Sprintf("duplicate finisher %q", f.Text))
		}
		seen[f.TextKey()] = true
		if f.Form == models.FormClause && f.Tense == models.TenseNone {
			warnings = append(warnings, fmt.Sprintf("clause finisher %q has no tense and matches no starter", f.Text))
		}
	}

	for _, s := range pack.Starters {
		if len(s.Accepts) == 0 {
			warnings = append(warnings, fmt.Sprintf("starter %q accepts no known form", s.Text))
			continue
		}
		if len(grammar.CompatibleFinishers(s, pack.Finishers)) == 0 {
			warnings = append(warnings, fmt.Sprintf("starter %q has no compatible finisher", s.Text))
		}
	}

	return warnings
}

func isWordToken(word string) bool {
	for _, r := range word {
		if r != '-' && !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func capitalize(word string) string {
	if word == "" {
		return "Word"
	}
	runes := []rune(word)
	return string(runes[0]) + strings.ToLower(string(runes[1:]))
}

func orPlaceholder(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return placeholder
	}
	return s
}

func positiveOr(n json.Number, def int) int {
	v, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return def
		}
		switch {
		case f > maxCount:
			v = maxCount
		case f < -maxCount:
			v = -1
		default:
			v = int64(f)
		}
	}
	if v == 0 {
		return def
	}
	if v < 1 {
		return 1
	}
	if v > maxCount {
		return maxCount
	}
	return int(v)
}
