package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
)

// NewRouter wires the play surface. staticPath may be empty to serve no
// static files.
func NewRouter(play *PlayHandler, m *Middleware, startup *Startup, staticPath string) http.Handler {
	mux := http.NewServeMux()

	if staticPath != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticPath))))
	}
	if startup != nil {
		mux.HandleFunc("GET /healthz", startup.ShowStatus)
	}

	mux.HandleFunc("GET /", play.Home)
	mux.HandleFunc("GET /play", m.Learner(play.ShowPlay))
	mux.HandleFunc("GET /play/state", m.Learner(play.ShowState))
	mux.HandleFunc("GET /play/audio", play.Audio)

	post := func(h http.HandlerFunc) http.HandlerFunc {
		return m.RateLimit(m.Learner(m.CSRFProtect(h)))
	}
	mux.HandleFunc("POST /play/reveal", post(play.Reveal))
	mux.HandleFunc("POST /play/place", post(play.PlaceLetter))
	mux.HandleFunc("POST /play/reset", post(play.Reset))
	mux.HandleFunc("POST /play/start-over", post(play.StartOver))
	mux.HandleFunc("POST /play/starter", post(play.PickStarter))
	mux.HandleFunc("POST /play/finisher", post(play.PickFinisher))
	mux.HandleFunc("POST /play/challenge", post(play.SetChallenge))

	return Logging(mux)
}

// LoadTemplates parses the base layout and every page template
func LoadTemplates(templatesPath string) (*template.Template, error) {
	files := []string{filepath.Join(templatesPath, "base.tmpl")}

	matches, err := filepath.Glob(filepath.Join(templatesPath, "play/*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob play templates: %w", err)
	}
	files = append(files, matches...)

	tmpl, err := template.New("").ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}
