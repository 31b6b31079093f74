package game

import (
	"sort"
	"strings"

	"wordsteady/internal/models"
)

// Restore validates a record read back from storage against pack. It returns
// false when the record cannot belong to this word, in which case the caller
// starts fresh. Step2Done is recomputed from the restored slot letters rather
// than trusted, and stage 3 is re-locked if it no longer holds.
func Restore(pack *models.Pack, rec models.SessionRecord) (models.SessionRecord, bool) {
	if !rec.Started {
		return models.SessionRecord{ChallengeMode: rec.ChallengeMode}, true
	}

	out := rec.Clone()
	word := letters(pack.Word)
	if len(out.SlotLetters) != len(word) {
		return models.SessionRecord{}, false
	}

	var placed []string
	for _, s := range out.SlotLetters {
		if s != "" {
			placed = append(placed, s)
		}
	}
	if !sameLetters(append(placed, out.BankLetters...), word) {
		return models.SessionRecord{}, false
	}

	wasDone := out.Step2Done
	out.Step2Done = out.SlotsFilled() && out.Built() == pack.Word
	if !out.Step2Done {
		if wasDone {
			out.Feedback = models.Feedback{}
		}
		lockStep3(&out)
		return out, true
	}

	if out.Step3Correct < 0 {
		out.Step3Correct = 0
	}
	if out.Step3Correct > pack.Step3Target {
		out.Step3Correct = pack.Step3Target
	}
	out.Step3Done = out.Step3Correct >= pack.Step3Target
	if out.Attempts < 0 {
		out.Attempts = 0
	}
	if out.Correct < 0 {
		out.Correct = 0
	}
	if out.Correct > out.Attempts {
		out.Attempts = out.Correct
	}

	if out.StarterPick != nil && (*out.StarterPick < 0 || *out.StarterPick >= len(pack.Starters)) {
		out.StarterPick = nil
	}
	if !out.ChallengeMode && hasDistractors(out.Options) {
		out.StarterPick = nil
		out.FinishPick = nil
		out.Result = models.Feedback{}
	}
	if out.StarterPick == nil {
		out.Options = nil
	}
	if out.FinishPick != nil && (*out.FinishPick < 0 || *out.FinishPick >= len(out.Options)) {
		out.FinishPick = nil
	}
	return out, true
}

// hasDistractors reports whether any option is a distractor, which only
// challenge mode may offer
func hasDistractors(opts []models.Option) bool {
	for _, o := range opts {
		if o.Kind != models.OptionCorrect {
			return true
		}
	}
	return false
}

func sameLetters(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	return strings.Join(x, "\x00") == strings.Join(y, "\x00")
}
