package handlers

import (
	"wordsteady/internal/game"
)

type PlayViewData struct {
	Title     string
	View      game.View
	Date      string
	CSRFToken string
	AudioURL  string
}

type StatusViewData struct {
	Ready    bool          `json:"ready"`
	Current  string        `json:"current"`
	Progress int           `json:"progress"`
	Steps    []StartupStep `json:"steps"`
}
