package server

import (
	"net/http"
	"strconv"

	"MoodFM/logger"

	"github.com/google/uuid"
)

// CreateSessionHandler mints a fresh session ID. The session gets its
// memory lazily on the first search; nothing is stored here.
func (h *APIHandler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.New().String()

	logger.Info("[session] created", logger.String("sessionID", sessionID))

	writeJSON(w, http.StatusOK, map[string]string{
		"session_id": sessionID,
	})
}

// HistoryHandler returns recent recommendation history, by session when the
// 'session' parameter is given, otherwise by the authenticated user.
func (h *APIHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 || parsed > 100 {
			writeError(w, http.StatusBadRequest, "Query parameter 'limit' must be between 1 and 100")
			return
		}
		limit = parsed
	}

	if sessionID := r.URL.Query().Get("session"); sessionID != "" {
		entries, err := h.historyRepo.GetBySession(r.Context(), sessionID, limit)
		if err != nil {
			logger.Error("[history] session query failed",
				logger.String("sessionID", sessionID),
				logger.ErrorField(err))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"history": entries})
		return
	}

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Either a 'session' parameter or authentication is required")
		return
	}

	entries, err := h.historyRepo.GetByUser(r.Context(), userID, limit)
	if err != nil {
		logger.Error("[history] user query failed",
			logger.Int64("userID", userID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": entries})
}
