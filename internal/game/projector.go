package game

import (
	"fmt"

	"wordsteady/internal/models"
)

// SpellingPanel is the visible panel of the letter-building stage
type SpellingPanel string

const (
	PanelLocked   SpellingPanel = "locked"
	PanelBuilding SpellingPanel = "building"
	PanelBuilt    SpellingPanel = "built"
)

// SentencePanel is the visible panel of the sentence-building stage
type SentencePanel string

const (
	PanelStep3Locked  SentencePanel = "step3-locked"
	PanelStep3Working SentencePanel = "step3-working"
	PanelStep3Done    SentencePanel = "step3-done"
)

// Chip is one selectable tile or fragment
type Chip struct {
	Index   int    `json:"index"`
	Text    string `json:"text"`
	Pressed bool   `json:"pressed"`
	Enabled bool   `json:"enabled"`
}

// View is everything a surface needs to draw the session
type View struct {
	Eyebrow      string `json:"eyebrow"`
	Title        string `json:"title"`
	Meaning      string `json:"meaning"`
	Example      string `json:"example"`
	ContentError bool   `json:"contentError"`
	Fallback     bool   `json:"fallback"`

	RevealLabel   string `json:"revealLabel"`
	RevealEnabled bool   `json:"revealEnabled"`

	SpellingPanel SpellingPanel   `json:"spellingPanel"`
	Slots         []Chip          `json:"slots"`
	Bank          []Chip          `json:"bank"`
	Feedback      models.Feedback `json:"feedback"`
	ResetEnabled  bool            `json:"resetEnabled"`

	SentencePanel    SentencePanel   `json:"sentencePanel"`
	LockedNote       string          `json:"lockedNote,omitempty"`
	Starters         []Chip          `json:"starters"`
	Finishers        []Chip          `json:"finishers"`
	Result           models.Feedback `json:"result"`
	ProgressText     string          `json:"progress"`
	Challenge        bool            `json:"challenge"`
	ChallengeEnabled bool            `json:"challengeEnabled"`
	DoneEnabled      bool            `json:"doneEnabled"`

	Saved bool `json:"saved"`
}

// Project maps a record to its view. It reads nothing but its arguments, so
// projecting the same record twice yields the same view.
func Project(pack *models.Pack, rec models.SessionRecord) View {
	v := header(pack)
	v.RevealLabel = pack.Word
	v.RevealEnabled = !rec.Started

	switch rec.SpellingStage() {
	case models.SpellingLocked:
		v.SpellingPanel = PanelLocked
	case models.SpellingBuilt:
		v.SpellingPanel = PanelBuilt
	default:
		v.SpellingPanel = PanelBuilding
	}

	building := rec.Started && !rec.Step2Done
	for i, s := range rec.SlotLetters {
		v.Slots = append(v.Slots, Chip{Index: i, Text: s, Pressed: s != ""})
	}
	for i, s := range rec.BankLetters {
		v.Bank = append(v.Bank, Chip{Index: i, Text: s, Enabled: building})
	}
	v.Feedback = rec.Feedback
	v.ResetEnabled = rec.Started

	stage := rec.SentenceStage()
	working := stage == models.SentenceUnlocked
	switch stage {
	case models.SentenceLocked:
		v.SentencePanel = PanelStep3Locked
		v.LockedNote = msgStep3Locked
	case models.SentenceDone:
		v.SentencePanel = PanelStep3Done
	default:
		v.SentencePanel = PanelStep3Working
	}

	if stage != models.SentenceLocked {
		for i, s := range pack.Starters {
			v.Starters = append(v.Starters, Chip{
				Index:   i,
				Text:    s.Text,
				Pressed: rec.StarterPick != nil && *rec.StarterPick == i,
				Enabled: working,
			})
		}
		for i, o := range rec.Options {
			v.Finishers = append(v.Finishers, Chip{
				Index:   i,
				Text:    o.Finisher.Text,
				Pressed: rec.FinishPick != nil && *rec.FinishPick == i,
				Enabled: working && rec.StarterPick != nil,
			})
		}
		v.Result = rec.Result
	}

	v.ProgressText = ProgressOf(pack, rec).Text()
	v.Challenge = rec.ChallengeMode
	v.ChallengeEnabled = !rec.Step3Done
	v.DoneEnabled = rec.Step3Done
	return v
}

// ProjectError is the degraded view for a pack that failed validation.
// pack may be nil or partially filled.
func ProjectError(pack *models.Pack) View {
	v := View{
		Title:         "Word",
		Meaning:       "—",
		Example:       "—",
		Eyebrow:       eyebrow(0),
		ContentError:  true,
		RevealLabel:   "CONTENT ERROR",
		SpellingPanel: PanelLocked,
		SentencePanel: PanelStep3Locked,
		LockedNote:    msgStep3Locked,
	}
	if pack != nil {
		h := header(pack)
		h.ContentError = true
		h.RevealLabel = v.RevealLabel
		h.SpellingPanel = v.SpellingPanel
		h.SentencePanel = v.SentencePanel
		h.LockedNote = v.LockedNote
		return h
	}
	return v
}

func header(pack *models.Pack) View {
	return View{
		Eyebrow:  eyebrow(pack.Minutes),
		Title:    pack.Display,
		Meaning:  pack.Meaning,
		Example:  pack.Example,
		Fallback: pack.Fallback,
	}
}

func eyebrow(minutes int) string {
	if minutes <= 0 {
		minutes = 6
	}
	return fmt.Sprintf("Today’s session • ~%d minutes", minutes)
}
