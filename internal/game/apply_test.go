package game

import (
	"strings"
	"testing"

	"wordsteady/internal/grammar"
	"wordsteady/internal/models"
)

func TestRevealOnlyFromLocked(t *testing.T) {
	pack := steadfastPack()
	rng := newRand()

	rec := Apply(pack, models.SessionRecord{}, Reveal(), rng)
	if !rec.Started {
		t.Fatal("reveal should start the session")
	}
	if len(rec.SlotLetters) != len(pack.Word) {
		t.Errorf("expected %d slots, got %d", len(pack.Word), len(rec.SlotLetters))
	}
	if !sameLetters(rec.BankLetters, letters(pack.Word)) {
		t.Errorf("bank %v is not a scramble of %s", rec.BankLetters, pack.Word)
	}
	if strings.Join(rec.BankLetters, "") == pack.Word {
		t.Error("bank should not start in the solved order")
	}

	again := Apply(pack, rec, Reveal(), rng)
	if strings.Join(again.BankLetters, "") != strings.Join(rec.BankLetters, "") {
		t.Error("a second reveal should not reshuffle the bank")
	}
}

func TestActionsBeforeRevealAreNoOps(t *testing.T) {
	pack := steadfastPack()
	rng := newRand()
	actions := []Action{PlaceLetter(0, 0), Reset(), PickStarter(0), PickFinisher(0)}

	for _, a := range actions {
		got := Apply(pack, models.SessionRecord{}, a, rng)
		if got.Started || len(got.SlotLetters) != 0 || got.StarterPick != nil {
			t.Errorf("%s before reveal changed the record: %+v", a.Type, got)
		}
	}
}

func TestPlaceLetterFillsFirstEmptySlot(t *testing.T) {
	pack := steadfastPack()
	rng := newRand()
	rec := Apply(pack, models.SessionRecord{}, Reveal(), rng)

	first := rec.BankLetters[0]
	rec = Apply(pack, rec, PlaceLetter(0, 5), rng)
	if rec.SlotLetters[0] != first {
		t.Errorf("letter should land in slot 0, slots = %v", rec.SlotLetters)
	}
	if len(rec.BankLetters) != len(pack.Word)-1 {
		t.Errorf("tile should leave the bank, bank = %v", rec.BankLetters)
	}

	before := rec.Clone()
	rec = Apply(pack, rec, PlaceLetter(99, 0), rng)
	if rec.Built() != before.Built() || len(rec.BankLetters) != len(before.BankLetters) {
		t.Error("out-of-range tile should be a no-op")
	}
}

func TestSpellingCompletesOnlyOnExactMatch(t *testing.T) {
	pack := steadfastPack()
	pack.Word = "STEAD"
	rng := newRand()

	var perms [][]string
	var permute func(prefix, rest []string)
	permute = func(prefix, rest []string) {
		if len(rest) == 0 {
			perms = append(perms, append([]string(nil), prefix...))
			return
		}
		for i := range rest {
			next := append(append([]string(nil), rest[:i]...), rest[i+1:]...)
			permute(append(prefix, rest[i]), next)
		}
	}
	permute(nil, letters(pack.Word))

	if len(perms) != 120 {
		t.Fatalf("expected 120 permutations, got %d", len(perms))
	}
	for _, seq := range perms {
		rec := Apply(pack, models.SessionRecord{}, Reveal(), rng)
		rec = spell(t, pack, rec, seq, rng)

		want := strings.Join(seq, "") == pack.Word
		if rec.Step2Done != want {
			t.Errorf("%s: step2Done = %v, want %v", strings.Join(seq, ""), rec.Step2Done, want)
		}
		if rec.Feedback.OK != want {
			t.Errorf("%s: feedback ok = %v, want %v", strings.Join(seq, ""), rec.Feedback.OK, want)
		}
		if want != (rec.SentenceStage() == models.SentenceUnlocked) {
			t.Errorf("%s: stage 3 unlocked = %v", strings.Join(seq, ""), rec.SentenceStage())
		}
	}
}

func TestSpellingIsCaseSensitive(t *testing.T) {
	pack := steadfastPack()
	pack.Word = "AB"
	rng := newRand()

	rec := models.SessionRecord{Started: true, SlotLetters: []string{"a", ""}, BankLetters: []string{"B"}}
	rec = Apply(pack, rec, PlaceLetter(0, 0), rng)
	if rec.Step2Done {
		t.Error("lower-case letters should not match an upper-case word")
	}
}

func TestWrongSpellingLocksStep3(t *testing.T) {
	pack := steadfastPack()
	rng := newRand()
	rec := Apply(pack, models.SessionRecord{}, Reveal(), rng)

	wrong := letters(pack.Word)
	wrong[0], wrong[1] = wrong[1], wrong[0]
	rec = spell(t, pack, rec, wrong, rng)

	if rec.Step2Done {
		t.Fatal("a wrong arrangement should not complete stage 2")
	}
	if rec.Feedback.OK || rec.Feedback.Text == "" {
		t.Errorf("expected failure feedback, got %+v", rec.Feedback)
	}
	if got := Apply(pack, rec, PickStarter(0), rng); got.StarterPick != nil {
		t.Error("stage 3 should stay locked after a wrong spelling")
	}

	rec = Apply(pack, rec, Reset(), rng)
	if rec.Built() != "" || len(rec.BankLetters) != len(pack.Word) {
		t.Errorf("reset should return every tile to the bank: slots=%v bank=%v", rec.SlotLetters, rec.BankLetters)
	}
	if !rec.Started {
		t.Error("reset should keep the session started")
	}
	if rec.Feedback.Text != "" {
		t.Error("reset should clear feedback")
	}
}

func TestPlaceLetterAfterBuiltIsNoOp(t *testing.T) {
	pack := steadfastPack()
	rng := newRand()
	rec := solved(t, pack, rng)

	rec.BankLetters = []string{"X"}
	got := Apply(pack, rec, PlaceLetter(0, 0), rng)
	if got.Built() != pack.Word || len(got.BankLetters) != 1 {
		t.Error("placing a tile on a built word should change nothing")
	}
}

func TestResetClearsStep3Progress(t *testing.T) {
	pack := steadfastPack()
	pack.Step3Target = 5
	rng := newRand()
	rec := solved(t, pack, rng)
	rec = Apply(pack, rec, SetChallenge(true), rng)
	rec = Apply(pack, rec, PickStarter(0), rng)
	rec = Apply(pack, rec, PickFinisher(optionIndex(rec, "things got difficult.")), rng)
	rec = Apply(pack, rec, PickFinisher(optionOfKind(rec, models.OptionTenseDistractor)), rng)

	if rec.Step3Correct != 1 || rec.Attempts != 2 || rec.Correct != 1 {
		t.Fatalf("unexpected tallies before reset: %+v", rec)
	}

	rec = Apply(pack, rec, Reset(), rng)
	if rec.Step3Correct != 0 || rec.Attempts != 0 || rec.Correct != 0 || rec.Step3Done {
		t.Errorf("reset should zero stage 3: %+v", rec)
	}
	if rec.StarterPick != nil || rec.Options != nil {
		t.Error("reset should clear stage 3 picks")
	}
	if rec.SentenceStage() != models.SentenceLocked {
		t.Error("reset should re-lock stage 3")
	}
	if !rec.ChallengeMode {
		t.Error("reset should not touch the challenge toggle")
	}
}

func TestStep3ExampleScenario(t *testing.T) {
	pack := steadfastPack()
	rng := newRand()
	rec := solved(t, pack, rng)

	rec = Apply(pack, rec, PickStarter(0), rng)
	if rec.StarterPick == nil || *rec.StarterPick != 0 {
		t.Fatal("starter should be selected")
	}
	if optionIndex(rec, "things get difficult.") >= 0 {
		t.Error("non-challenge list must not offer a present-tense clause for a past starter")
	}
	for _, o := range rec.Options {
		if !grammar.IsCompatible(pack.Starters[0], o.Finisher) {
			t.Errorf("incompatible option %q displayed", o.Finisher.Text)
		}
	}

	idx := optionIndex(rec, "things got difficult.")
	if idx < 0 {
		t.Fatal("compatible finisher missing from the list")
	}
	rec = Apply(pack, rec, PickFinisher(idx), rng)
	if rec.Step3Correct != 1 {
		t.Errorf("step3Correct = %d, want 1", rec.Step3Correct)
	}
	if rec.Step3Done {
		t.Error("one sentence should not finish a target of two")
	}
	if !rec.Result.OK || !strings.Contains(rec.Result.Text, "She remained steadfast when things got difficult.") {
		t.Errorf("unexpected result %+v", rec.Result)
	}
	if rec.Attempts != 0 || rec.Correct != 0 {
		t.Error("attempts are only tallied in challenge mode")
	}
}

func TestTenseMismatchShowsHint(t *testing.T) {
	pack := steadfastPack()
	rng := newRand()
	rec := solved(t, pack, rng)
	rec = Apply(pack, rec, SetChallenge(true), rng)
	rec = Apply(pack, rec, PickStarter(0), rng)

	idx := optionOfKind(rec, models.OptionTenseDistractor)
	if idx < 0 {
		t.Fatal("challenge list should include a tense distractor")
	}
	if tense := rec.Options[idx].Finisher.Tense; tense != models.TensePresent {
		t.Fatalf("tense distractor has tense %s", tense)
	}

	rec = Apply(pack, rec, PickFinisher(idx), rng)
	if rec.Step3Correct != 0 {
		t.Error("a wrong pick must not advance progress")
	}
	if rec.FinishPick != nil {
		t.Error("a wrong pick should be cleared")
	}
	if rec.Result.OK || !strings.Contains(rec.Result.Text, "past tense") {
		t.Errorf("expected a tense hint, got %+v", rec.Result)
	}
	if rec.Attempts != 1 || rec.Correct != 0 {
		t.Errorf("attempts=%d correct=%d, want 1/0", rec.Attempts, rec.Correct)
	}
}

func TestChallengeTallies(t *testing.T) {
	pack := steadfastPack()
	pack.Step3Target = 100
	rng := newRand()
	rec := solved(t, pack, rng)
	rec = Apply(pack, rec, SetChallenge(true), rng)

	for round := 0; round < 40; round++ {
		rec = Apply(pack, rec, PickStarter(round%len(pack.Starters)), rng)
		pick := rng.Intn(len(rec.Options))
		compatible := grammar.IsCompatible(pack.Starters[*rec.StarterPick], rec.Options[pick].Finisher)
		before := rec

		rec = Apply(pack, rec, PickFinisher(pick), rng)

		if rec.Attempts != before.Attempts+1 {
			t.Fatalf("round %d: attempts should grow by one", round)
		}
		wantCorrect := before.Correct
		if compatible {
			wantCorrect++
		}
		if rec.Correct != wantCorrect {
			t.Fatalf("round %d: correct = %d, want %d", round, rec.Correct, wantCorrect)
		}
		if rec.Attempts < rec.Correct {
			t.Fatalf("round %d: attempts %d < correct %d", round, rec.Attempts, rec.Correct)
		}
	}
}

func TestStep3DoneAtTarget(t *testing.T) {
	pack := steadfastPack()
	rng := newRand()
	rec := solved(t, pack, rng)

	rec = Apply(pack, rec, PickStarter(2), rng)
	rec = Apply(pack, rec, PickFinisher(0), rng)
	if rec.Step3Done {
		t.Fatal("done after one of two sentences")
	}
	rec = Apply(pack, rec, PickStarter(4), rng)
	rec = Apply(pack, rec, PickFinisher(0), rng)
	if !rec.Step3Done || rec.Step3Correct != 2 {
		t.Fatalf("expected done at 2/2, got %d done=%v", rec.Step3Correct, rec.Step3Done)
	}

	after := Apply(pack, rec, PickStarter(0), rng)
	if *after.StarterPick != 4 {
		t.Error("starter picks should be locked once done")
	}
	after = Apply(pack, after, PickFinisher(0), rng)
	if after.Step3Correct != 2 || !after.Step3Done {
		t.Error("progress must not move once done")
	}
	after = Apply(pack, after, SetChallenge(true), rng)
	if after.ChallengeMode {
		t.Error("challenge toggle should be disabled once done")
	}
}

func TestPickFinisherWithoutStarterIsNoOp(t *testing.T) {
	pack := steadfastPack()
	rng := newRand()
	rec := solved(t, pack, rng)

	got := Apply(pack, rec, PickFinisher(0), rng)
	if got.Step3Correct != 0 || got.Result.Text != "" {
		t.Error("picking a finisher before a starter should do nothing")
	}
}

func TestToggleChallengeClearsPicks(t *testing.T) {
	pack := steadfastPack()
	rng := newRand()
	rec := solved(t, pack, rng)
	rec = Apply(pack, rec, PickStarter(0), rng)

	rec = Apply(pack, rec, SetChallenge(true), rng)
	if rec.StarterPick != nil || rec.FinishPick != nil || rec.Options != nil || rec.Result.Text != "" {
		t.Errorf("toggling challenge should clear picks: %+v", rec)
	}

	rec = Apply(pack, rec, PickStarter(0), rng)
	if optionOfKind(rec, models.OptionFormDistractor) < 0 {
		t.Error("reselecting in challenge mode should add distractors")
	}
}

func TestStartOverReturnsToLocked(t *testing.T) {
	pack := steadfastPack()
	rng := newRand()
	rec := solved(t, pack, rng)

	rec = Apply(pack, rec, StartOver(), rng)
	if rec.Started || rec.Step2Done || len(rec.SlotLetters) != 0 {
		t.Errorf("start over should return an empty record: %+v", rec)
	}
	if rec.SpellingStage() != models.SpellingLocked {
		t.Error("start over should lock the spelling stage")
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	pack := steadfastPack()
	rng := newRand()
	rec := Apply(pack, models.SessionRecord{}, Reveal(), rng)
	snapshot := rec.Clone()

	_ = Apply(pack, rec, PlaceLetter(0, 0), rng)
	_ = Apply(pack, rec, Reset(), rng)

	if strings.Join(rec.BankLetters, "") != strings.Join(snapshot.BankLetters, "") {
		t.Error("Apply modified the caller's bank")
	}
	if rec.Built() != snapshot.Built() {
		t.Error("Apply modified the caller's slots")
	}
}
