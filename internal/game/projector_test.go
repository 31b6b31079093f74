package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"wordsteady/internal/models"
)

func TestProjectIsIdempotent(t *testing.T) {
	pack := steadfastPack()
	rng := newRand()

	records := []models.SessionRecord{{}}
	rec := Apply(pack, models.SessionRecord{}, Reveal(), rng)
	records = append(records, rec)
	rec = solved(t, pack, rng)
	records = append(records, rec)
	rec = Apply(pack, rec, SetChallenge(true), rng)
	rec = Apply(pack, rec, PickStarter(0), rng)
	records = append(records, rec)

	for i, r := range records {
		first := Project(pack, r)
		second := Project(pack, r)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("record %d: projection changed between calls (-first +second):\n%s", i, diff)
		}
	}
}

func TestProjectLocked(t *testing.T) {
	pack := steadfastPack()
	v := Project(pack, models.SessionRecord{})

	want := View{
		Eyebrow:          "Today’s session • ~6 minutes",
		Title:            "Steadfast",
		Meaning:          pack.Meaning,
		Example:          pack.Example,
		RevealLabel:      "STEADFAST",
		RevealEnabled:    true,
		SpellingPanel:    PanelLocked,
		SentencePanel:    PanelStep3Locked,
		LockedNote:       "Complete Step 2 to unlock Step 3.",
		ProgressText:     "Progress: 0 / 2",
		ChallengeEnabled: true,
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("locked view mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectPanels(t *testing.T) {
	pack := steadfastPack()
	rng := newRand()

	building := Apply(pack, models.SessionRecord{}, Reveal(), rng)
	v := Project(pack, building)
	if v.SpellingPanel != PanelBuilding || v.RevealEnabled {
		t.Errorf("revealed record: panel=%s revealEnabled=%v", v.SpellingPanel, v.RevealEnabled)
	}
	if len(v.Bank) != 9 || !v.Bank[0].Enabled {
		t.Error("bank tiles should be enabled while building")
	}
	if v.Starters != nil {
		t.Error("starters should be hidden while stage 3 is locked")
	}

	done := solved(t, pack, rng)
	v = Project(pack, done)
	if v.SpellingPanel != PanelBuilt || v.SentencePanel != PanelStep3Working {
		t.Errorf("solved record: %s / %s", v.SpellingPanel, v.SentencePanel)
	}
	if len(v.Starters) != len(pack.Starters) {
		t.Errorf("expected %d starters, got %d", len(pack.Starters), len(v.Starters))
	}

	picked := Apply(pack, done, PickStarter(1), rng)
	v = Project(pack, picked)
	if !v.Starters[1].Pressed {
		t.Error("picked starter should be pressed")
	}
	for _, f := range v.Finishers {
		if !f.Enabled {
			t.Errorf("finisher %q should be enabled once a starter is picked", f.Text)
		}
	}
}

func TestProjectChallengeProgressText(t *testing.T) {
	pack := steadfastPack()
	rec := models.SessionRecord{
		Started:       true,
		Step2Done:     true,
		ChallengeMode: true,
		Step3Correct:  1,
		Attempts:      3,
		Correct:       1,
	}
	v := Project(pack, rec)
	if v.ProgressText != "Progress: 1 / 2 • Score: 1 / 3" {
		t.Errorf("ProgressText = %q", v.ProgressText)
	}
	if !v.Challenge || !v.ChallengeEnabled {
		t.Error("challenge should be on and toggleable")
	}
}

func TestProjectError(t *testing.T) {
	v := ProjectError(nil)
	if !v.ContentError || v.RevealLabel != "CONTENT ERROR" || v.RevealEnabled {
		t.Errorf("unexpected error view: %+v", v)
	}

	pack := steadfastPack()
	v = ProjectError(pack)
	if v.Title != "Steadfast" || !v.ContentError || v.RevealEnabled {
		t.Errorf("error view should keep the header: %+v", v)
	}
}
