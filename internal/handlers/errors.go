package handlers

import (
	"net/http"

	"wordsteady/internal/logger"
)

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		logger.Error(logMsg, "status", status, "err", err)
	}

	http.Error(w, userMsg, status)
}
