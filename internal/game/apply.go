package game

import (
	"fmt"
	"strings"

	"wordsteady/internal/grammar"
	"wordsteady/internal/models"
)

// ActionType names a learner input
type ActionType string

const (
	ActionReveal       ActionType = "reveal"
	ActionPlaceLetter  ActionType = "place"
	ActionReset        ActionType = "reset"
	ActionStartOver    ActionType = "start-over"
	ActionPickStarter  ActionType = "starter"
	ActionPickFinisher ActionType = "finisher"
	ActionSetChallenge ActionType = "challenge"
)

// Action is one learner input. Index is the tile, starter or finisher index
// depending on Type; Slot is accepted for PlaceLetter but letters always land
// in the first empty slot.
type Action struct {
	Type  ActionType
	Index int
	Slot  int
	On    bool
}

func Reveal() Action { return Action{Type: ActionReveal} }

func PlaceLetter(tile, slot int) Action {
	return Action{Type: ActionPlaceLetter, Index: tile, Slot: slot}
}

func Reset() Action { return Action{Type: ActionReset} }

func StartOver() Action { return Action{Type: ActionStartOver} }

func PickStarter(i int) Action { return Action{Type: ActionPickStarter, Index: i} }

func PickFinisher(i int) Action { return Action{Type: ActionPickFinisher, Index: i} }

func SetChallenge(on bool) Action { return Action{Type: ActionSetChallenge, On: on} }

const (
	msgBuilt       = "Correct. You’ve built the word."
	msgNotQuite    = "Not quite. Reset the letters and try again."
	msgStep3Locked = "Complete Step 2 to unlock Step 3."
	msgStep3Done   = "Well done. You’ve finished today’s session."
)

// Apply returns the record that results from action. The input record is
// never modified. Actions that are invalid for the current stage return an
// unchanged copy.
func Apply(pack *models.Pack, rec models.SessionRecord, action Action, rng grammar.Rand) models.SessionRecord {
	next := rec.Clone()

	switch action.Type {
	case ActionReveal:
		if next.Started {
			return next
		}
		next.Started = true
		next.SlotLetters = make([]string, len(letters(pack.Word)))
		next.BankLetters = scramble(pack.Word, rng)
		next.Feedback = models.Feedback{}
		lockStep3(&next)

	case ActionPlaceLetter:
		placeLetter(pack, &next, action.Index)

	case ActionReset:
		if !next.Started {
			return next
		}
		next.SlotLetters = make([]string, len(letters(pack.Word)))
		next.BankLetters = scramble(pack.Word, rng)
		next.Step2Done = false
		next.Feedback = models.Feedback{}
		lockStep3(&next)

	case ActionStartOver:
		return models.SessionRecord{}

	case ActionPickStarter:
		if !next.Step2Done || next.Step3Done {
			return next
		}
		if action.Index < 0 || action.Index >= len(pack.Starters) {
			return next
		}
		i := action.Index
		next.StarterPick = &i
		next.FinishPick = nil
		next.Result = models.Feedback{}
		next.Options = grammar.DisplayList(pack.Starters[i], pack.Finishers, next.ChallengeMode, rng)

	case ActionPickFinisher:
		pickFinisher(pack, &next, action.Index)

	case ActionSetChallenge:
		if next.Step3Done {
			return next
		}
		next.ChallengeMode = action.On
		next.StarterPick = nil
		next.FinishPick = nil
		next.Options = nil
		next.Result = models.Feedback{}
	}

	return next
}

func placeLetter(pack *models.Pack, rec *models.SessionRecord, tile int) {
	if !rec.Started || rec.Step2Done {
		return
	}
	if tile < 0 || tile >= len(rec.BankLetters) {
		return
	}
	slot := -1
	for i, s := range rec.SlotLetters {
		if s == "" {
			slot = i
			break
		}
	}
	if slot < 0 {
		return
	}

	rec.SlotLetters[slot] = rec.BankLetters[tile]
	rec.BankLetters = append(rec.BankLetters[:tile], rec.BankLetters[tile+1:]...)

	if !rec.SlotsFilled() {
		return
	}
	if rec.Built() == pack.Word {
		rec.Step2Done = true
		rec.Feedback = models.Feedback{Text: msgBuilt, OK: true}
		// stage 3 always opens from zero
		lockStep3(rec)
		return
	}
	rec.Step2Done = false
	rec.Feedback = models.Feedback{Text: msgNotQuite}
	lockStep3(rec)
}

func pickFinisher(pack *models.Pack, rec *models.SessionRecord, index int) {
	if !rec.Step2Done || rec.Step3Done || rec.StarterPick == nil {
		return
	}
	if index < 0 || index >= len(rec.Options) {
		return
	}
	starterIdx := *rec.StarterPick
	if starterIdx < 0 || starterIdx >= len(pack.Starters) {
		return
	}
	starter := pack.Starters[starterIdx]
	option := rec.Options[index]
	ok := grammar.IsCompatible(starter, option.Finisher)

	if rec.ChallengeMode {
		rec.Attempts++
		if ok {
			rec.Correct++
		}
	}

	if !ok {
		rec.FinishPick = nil
		rec.Result = models.Feedback{Text: grammar.Hint(starter, option, pack.Finishers)}
		return
	}

	i := index
	rec.FinishPick = &i
	if rec.Step3Correct < pack.Step3Target {
		rec.Step3Correct++
	}
	sentence := grammar.Sentence(starter, option.Finisher)

	if rec.Step3Correct >= pack.Step3Target {
		rec.Step3Done = true
		rec.Result = models.Feedback{Text: fmt.Sprintf("%q %s", sentence, msgStep3Done), OK: true}
		return
	}
	remaining := pack.Step3Target - rec.Step3Correct
	noun := "sentences"
	if remaining == 1 {
		noun = "sentence"
	}
	rec.Result = models.Feedback{
		Text: fmt.Sprintf("%q Nice, that works. Build %d more %s.", sentence, remaining, noun),
		OK:   true,
	}
}

// lockStep3 clears every stage-3 field, including progress counters
func lockStep3(rec *models.SessionRecord) {
	rec.Step3Correct = 0
	rec.Step3Done = false
	rec.Attempts = 0
	rec.Correct = 0
	rec.StarterPick = nil
	rec.FinishPick = nil
	rec.Options = nil
	rec.Result = models.Feedback{}
}

func letters(word string) []string {
	out := make([]string, 0, len(word))
	for _, r := range word {
		out = append(out, string(r))
	}
	return out
}

// scramble shuffles the word's letters into bank tiles, reshuffling a few
// times if the result lands on the solved order.
func scramble(word string, rng grammar.Rand) []string {
	tiles := letters(word)
	for attempt := 0; attempt < 8; attempt++ {
		rng.Shuffle(len(tiles), func(i, j int) {
			tiles[i], tiles[j] = tiles[j], tiles[i]
		})
		if strings.Join(tiles, "") != word {
			break
		}
	}
	return tiles
}
