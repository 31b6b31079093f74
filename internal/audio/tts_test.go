package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestClipFilename(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"STEADFAST", "word_steadfast.mp3"},
		{" Well-Being ", "word_well-being.mp3"},
		{"../etc", "word____etc.mp3"},
	}
	for _, tt := range tests {
		if got := ClipFilename(tt.word); got != tt.want {
			t.Errorf("ClipFilename(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestClipDownloadsOnce(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if q := r.URL.Query().Get("q"); q != "steadfast" {
			t.Errorf("q = %q, want steadfast", q)
		}
		w.Write([]byte("ID3-fake-mp3"))
	}))
	defer srv.Close()

	svc := NewTTSService(filepath.Join(t.TempDir(), "audio"))
	svc.baseURL = srv.URL

	for i := 0; i < 2; i++ {
		path, err := svc.Clip(context.Background(), "STEADFAST")
		if err != nil {
			t.Fatalf("Clip() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil || string(data) != "ID3-fake-mp3" {
			t.Fatalf("clip content = %q, err = %v", data, err)
		}
	}
	if calls != 1 {
		t.Errorf("endpoint called %d times, want 1", calls)
	}
}

func TestClipFailureLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	dir := t.TempDir()
	svc := NewTTSService(dir)
	svc.baseURL = srv.URL

	if _, err := svc.Clip(context.Background(), "calm"); err == nil {
		t.Fatal("expected an error")
	}
	if _, err := os.Stat(filepath.Join(dir, ClipFilename("calm"))); !os.IsNotExist(err) {
		t.Error("failed download should not leave a clip behind")
	}
}
