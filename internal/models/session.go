package models

import "strings"

// OptionKind tags a displayed finisher with why it is there
type OptionKind string

const (
	OptionCorrect         OptionKind = "correct"
	OptionTenseDistractor OptionKind = "tense"
	OptionFormDistractor  OptionKind = "form"
)

// Option is one finisher chip offered for the selected starter
type Option struct {
	Finisher Finisher   `json:"finisher"`
	Kind     OptionKind `json:"kind"`
}

// Feedback is a message line with its success flag
type Feedback struct {
	Text string `json:"text"`
	OK   bool   `json:"ok"`
}

// SessionRecord is the mutable, persisted state of one learner's session
// for one (day, word) pair
type SessionRecord struct {
	Started     bool     `json:"started"`
	SlotLetters []string `json:"slotLetters"`
	BankLetters []string `json:"bankLetters"`
	Step2Done   bool     `json:"step2Done"`
	Feedback    Feedback `json:"feedback"`

	ChallengeMode bool     `json:"challenge"`
	StarterPick   *int     `json:"starterPick,omitempty"`
	FinishPick    *int     `json:"finishPick,omitempty"`
	Options       []Option `json:"options,omitempty"`
	Result        Feedback `json:"result"`

	Step3Correct int  `json:"step3Correct"`
	Step3Done    bool `json:"step3Done"`
	Attempts     int  `json:"attempts"`
	Correct      int  `json:"correct"`
}

// Clone returns a deep copy so callers can mutate freely
func (r SessionRecord) Clone() SessionRecord {
	out := r
	out.SlotLetters = append([]string(nil), r.SlotLetters...)
	out.BankLetters = append([]string(nil), r.BankLetters...)
	out.Options = append([]Option(nil), r.Options...)
	if r.StarterPick != nil {
		v := *r.StarterPick
		out.StarterPick = &v
	}
	if r.FinishPick != nil {
		v := *r.FinishPick
		out.FinishPick = &v
	}
	return out
}

// Built joins the slot letters in order
func (r SessionRecord) Built() string {
	return strings.Join(r.SlotLetters, "")
}

// SlotsFilled reports whether every slot holds exactly one letter
func (r SessionRecord) SlotsFilled() bool {
	if len(r.SlotLetters) == 0 {
		return false
	}
	for _, s := range r.SlotLetters {
		if len([]rune(s)) != 1 {
			return false
		}
	}
	return true
}

// SpellingStage is the progress of the letter-building stage
type SpellingStage string

const (
	SpellingLocked   SpellingStage = "locked"
	SpellingRevealed SpellingStage = "revealed"
	SpellingBuilding SpellingStage = "building"
	SpellingBuilt    SpellingStage = "built"
)

// SentenceStage is the progress of the sentence-building stage
type SentenceStage string

const (
	SentenceLocked   SentenceStage = "locked"
	SentenceUnlocked SentenceStage = "unlocked"
	SentenceDone     SentenceStage = "done"
)

// SpellingStage derives the spelling track state from the record
func (r SessionRecord) SpellingStage() SpellingStage {
	switch {
	case !r.Started:
		return SpellingLocked
	case r.Step2Done:
		return SpellingBuilt
	}
	for _, s := range r.SlotLetters {
		if s != "" {
			return SpellingBuilding
		}
	}
	return SpellingRevealed
}

// SentenceStage derives the sentence track state from the record
func (r SessionRecord) SentenceStage() SentenceStage {
	switch {
	case !r.Step2Done:
		return SentenceLocked
	case r.Step3Done:
		return SentenceDone
	default:
		return SentenceUnlocked
	}
}
