package game

import "testing"

func TestProgressText(t *testing.T) {
	tests := []struct {
		name string
		p    Progress
		want string
	}{
		{"plain", Progress{Done: 0, Target: 2}, "Progress: 0 / 2"},
		{"plain ignores score", Progress{Done: 1, Target: 2, Correct: 4, Attempts: 5}, "Progress: 1 / 2"},
		{"challenge", Progress{Done: 2, Target: 2, Challenge: true, Correct: 2, Attempts: 3}, "Progress: 2 / 2 • Score: 2 / 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProgressAccuracy(t *testing.T) {
	if got := (Progress{}).Accuracy(); got != 0 {
		t.Errorf("Accuracy() with no attempts = %v, want 0", got)
	}
	if got := (Progress{Correct: 1, Attempts: 4}).Accuracy(); got != 25 {
		t.Errorf("Accuracy() = %v, want 25", got)
	}
}
