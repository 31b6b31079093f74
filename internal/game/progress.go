package game

import (
	"fmt"

	"wordsteady/internal/models"
)

// Progress is the stage-3 tally shown under the sentence builder
type Progress struct {
	Done      int
	Target    int
	Challenge bool
	Correct   int
	Attempts  int
}

// ProgressOf reads the tally out of rec
func ProgressOf(pack *models.Pack, rec models.SessionRecord) Progress {
	return Progress{
		Done:      rec.Step3Correct,
		Target:    pack.Step3Target,
		Challenge: rec.ChallengeMode,
		Correct:   rec.Correct,
		Attempts:  rec.Attempts,
	}
}

// Text renders the progress line, with the score appended in challenge mode
func (p Progress) Text() string {
	prog := fmt.Sprintf("Progress: %d / %d", p.Done, p.Target)
	if !p.Challenge {
		return prog
	}
	return fmt.Sprintf("%s • Score: %d / %d", prog, p.Correct, p.Attempts)
}

// Accuracy is the challenge-mode hit rate in percent, 0 with no attempts
func (p Progress) Accuracy() float64 {
	if p.Attempts == 0 {
		return 0
	}
	return float64(p.Correct) / float64(p.Attempts) * 100
}
