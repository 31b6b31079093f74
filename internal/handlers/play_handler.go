package handlers

import (
	"errors"
	"html/template"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wordsteady/internal/audio"
	"wordsteady/internal/content"
	"wordsteady/internal/game"
	"wordsteady/internal/grammar"
	"wordsteady/internal/logger"
	"wordsteady/internal/models"
	"wordsteady/internal/service"
)

// PlayHandler serves the daily session page and its actions
type PlayHandler struct {
	loader     *content.Loader
	sessions   *service.SessionService
	tts        *audio.TTSService
	middleware *Middleware
	templates  *template.Template
	newRand    func() grammar.Rand
}

// NewPlayHandler creates a new play handler. tts may be nil to disable
// pronunciation clips.
func NewPlayHandler(loader *content.Loader, sessions *service.SessionService, tts *audio.TTSService, middleware *Middleware, templates *template.Template) *PlayHandler {
	return &PlayHandler{
		loader:     loader,
		sessions:   sessions,
		tts:        tts,
		middleware: middleware,
		templates:  templates,
		newRand: func() grammar.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// Home redirects to the play page
func (h *PlayHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/play", http.StatusSeeOther)
}

// ShowPlay renders the session for the requested day
func (h *PlayHandler) ShowPlay(w http.ResponseWriter, r *http.Request) {
	date := requestedDate(r)
	view, ok := h.currentView(w, r, date)
	if !ok {
		return
	}

	data := PlayViewData{
		Title:     view.Title + " • WordSteady",
		View:      view,
		Date:      date,
		CSRFToken: h.middleware.CSRFToken(r),
	}
	if h.tts != nil && !view.ContentError {
		data.AudioURL = playURL("/play/audio", date)
	}

	w.Header().Set("Cache-Control", "no-store")
	if err := h.templates.ExecuteTemplate(w, "play.tmpl", data); err != nil {
		logger.Error("Error rendering play template", "err", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// ShowState returns the current view as JSON
func (h *PlayHandler) ShowState(w http.ResponseWriter, r *http.Request) {
	view, ok := h.currentView(w, r, requestedDate(r))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// currentView loads the day's pack and projects the learner's saved session
func (h *PlayHandler) currentView(w http.ResponseWriter, r *http.Request, date string) (game.View, bool) {
	learnerID := GetLearnerFromContext(r.Context())
	if learnerID == "" {
		http.Error(w, ErrNoLearner, http.StatusUnauthorized)
		return game.View{}, false
	}

	pack, err := h.loader.Load(r.Context(), date)
	if err != nil {
		if errors.Is(err, content.ErrInvalidPack) {
			return game.ProjectError(pack), true
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading content", err)
		return game.View{}, false
	}

	day := h.loader.Day(date)
	key := service.StorageKey(day, pack.Word)
	m := game.NewMachine(pack, h.sessions.Store(r.Context(), learnerID, day, pack.Word), key, h.newRand())
	return m.View(), true
}

// Reveal starts the session
func (h *PlayHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, func(*http.Request) (game.Action, error) {
		return game.Reveal(), nil
	})
}

// PlaceLetter moves a tile into the first empty slot
func (h *PlayHandler) PlaceLetter(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, func(r *http.Request) (game.Action, error) {
		tile, err := formIndex(r, "tile")
		if err != nil {
			return game.Action{}, err
		}
		slot, err := strconv.Atoi(r.FormValue("slot"))
		if err != nil {
			slot = -1
		}
		return game.PlaceLetter(tile, slot), nil
	})
}

// Reset clears the slots
func (h *PlayHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, func(*http.Request) (game.Action, error) {
		return game.Reset(), nil
	})
}

// StartOver discards the saved session
func (h *PlayHandler) StartOver(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, func(*http.Request) (game.Action, error) {
		return game.StartOver(), nil
	})
}

// PickStarter selects a sentence starter
func (h *PlayHandler) PickStarter(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, func(r *http.Request) (game.Action, error) {
		i, err := formIndex(r, "index")
		if err != nil {
			return game.Action{}, err
		}
		return game.PickStarter(i), nil
	})
}

// PickFinisher selects a finisher for the chosen starter
func (h *PlayHandler) PickFinisher(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, func(r *http.Request) (game.Action, error) {
		i, err := formIndex(r, "index")
		if err != nil {
			return game.Action{}, err
		}
		return game.PickFinisher(i), nil
	})
}

// SetChallenge turns challenge mode on or off
func (h *PlayHandler) SetChallenge(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, func(r *http.Request) (game.Action, error) {
		on, err := strconv.ParseBool(r.FormValue("on"))
		if err != nil {
			return game.Action{}, err
		}
		return game.SetChallenge(on), nil
	})
}

// dispatch applies one action to the learner's session under the session
// lock, then redirects back to the page or answers with the new view
func (h *PlayHandler) dispatch(w http.ResponseWriter, r *http.Request, parse func(*http.Request) (game.Action, error)) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	learnerID := GetLearnerFromContext(r.Context())
	if learnerID == "" {
		http.Error(w, ErrNoLearner, http.StatusUnauthorized)
		return
	}

	action, err := parse(r)
	if err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	date := requestedDate(r)
	pack, err := h.loader.Load(r.Context(), date)
	if err != nil {
		if errors.Is(err, content.ErrInvalidPack) {
			h.respond(w, r, date, game.ProjectError(pack))
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading content", err)
		return
	}

	day := h.loader.Day(date)
	key := service.StorageKey(day, pack.Word)

	release := h.sessions.Lock(learnerID, key)
	defer release()

	m := game.NewMachine(pack, h.sessions.Store(r.Context(), learnerID, day, pack.Word), key, h.newRand())
	view := m.Dispatch(action)
	logger.Debug("action applied", "learner", learnerID, "key", key, "action", action.Type)

	h.respond(w, r, date, view)
}

func (h *PlayHandler) respond(w http.ResponseWriter, r *http.Request, date string, view game.View) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, view)
		return
	}
	http.Redirect(w, r, playURL("/play", date), http.StatusSeeOther)
}

// Audio serves the pronunciation clip of the day's word
func (h *PlayHandler) Audio(w http.ResponseWriter, r *http.Request) {
	if h.tts == nil {
		http.NotFound(w, r)
		return
	}

	pack, err := h.loader.Load(r.Context(), requestedDate(r))
	if err != nil || !isSpeakable(pack) {
		http.NotFound(w, r)
		return
	}

	path, err := h.tts.Clip(r.Context(), pack.Word)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Pronunciation unavailable", "Error generating pronunciation clip", err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, path)
}

func isSpeakable(pack *models.Pack) bool {
	return pack != nil && pack.Word != ""
}

// requestedDate returns the date parameter when it is a valid YYYY-MM-DD
func requestedDate(r *http.Request) string {
	date := strings.TrimSpace(r.FormValue("date"))
	if !content.ValidDate(date) {
		return ""
	}
	return date
}

func playURL(path, date string) string {
	if date == "" {
		return path
	}
	return path + "?" + url.Values{"date": {date}}.Encode()
}

func formIndex(r *http.Request, field string) (int, error) {
	i, err := strconv.Atoi(r.FormValue(field))
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, strconv.ErrRange
	}
	return i, nil
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
