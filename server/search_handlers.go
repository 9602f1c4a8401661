package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"MoodFM/core/recommend"
	"MoodFM/logger"
	"MoodFM/model"
)

// searchFunc runs one engine search with the options derived from the request.
type searchFunc func(ctx context.Context, query string, opts recommend.SearchOptions) recommend.Result

// SearchArtistHandler recommends tracks by artist name.
func (h *APIHandler) SearchArtistHandler(w http.ResponseWriter, r *http.Request) {
	h.handleSearch(w, r, h.recommender.SearchByArtist)
}

// SearchGenreHandler recommends tracks for a genre.
func (h *APIHandler) SearchGenreHandler(w http.ResponseWriter, r *http.Request) {
	h.handleSearch(w, r, h.recommender.SearchByGenre)
}

// SearchMoodHandler recommends tracks for a mood, preferring the mapped
// genre when the mood is a known one.
func (h *APIHandler) SearchMoodHandler(w http.ResponseWriter, r *http.Request) {
	h.handleSearch(w, r, h.recommender.SearchByMoodWithGenreFallback)
}

// SearchTrackHandler recommends tracks by track title.
func (h *APIHandler) SearchTrackHandler(w http.ResponseWriter, r *http.Request) {
	h.handleSearch(w, r, h.recommender.SearchByTrack)
}

// handleSearch is the shared flow for the four fresh search endpoints:
// load the session memory, run the search excluding everything the session
// has seen, then persist the updated memory and a history row on success.
func (h *APIHandler) handleSearch(w http.ResponseWriter, r *http.Request, search searchFunc) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "Query parameter 'session' is required")
		return
	}

	opts := recommend.SearchOptions{}
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		count, err := strconv.Atoi(countStr)
		if err != nil || count <= 0 {
			writeError(w, http.StatusBadRequest, "Query parameter 'count' must be a positive integer")
			return
		}
		opts.Count = count
	}

	lock := h.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	mem, err := h.memStore.Load(r.Context(), sessionID)
	if err != nil {
		logger.Error("[search] failed to load session memory",
			logger.String("sessionID", sessionID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	opts.Exclude = mem.SeenSet()

	result := search(r.Context(), query, opts)
	if !result.OK() {
		h.writeSearchError(w, result)
		return
	}

	mem.Apply(result.SelectedTrackIDs, *result.Context, result.NextIndex)
	if err := h.memStore.Save(r.Context(), sessionID, mem); err != nil {
		logger.Error("[search] failed to save session memory",
			logger.String("sessionID", sessionID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.recordHistory(r, sessionID, result)

	writeJSON(w, http.StatusOK, result)
}

// SearchMoreHandler continues the session's previous search.
func (h *APIHandler) SearchMoreHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "Query parameter 'session' is required")
		return
	}

	opts := recommend.SearchOptions{}
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		count, err := strconv.Atoi(countStr)
		if err != nil || count <= 0 {
			writeError(w, http.StatusBadRequest, "Query parameter 'count' must be a positive integer")
			return
		}
		opts.Count = count
	}

	lock := h.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	mem, err := h.memStore.Load(r.Context(), sessionID)
	if err != nil {
		logger.Error("[more] failed to load session memory",
			logger.String("sessionID", sessionID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	result, err := h.recommender.Continue(r.Context(), mem, opts)
	if err != nil {
		if errors.Is(err, recommend.ErrNoContext) {
			writeError(w, http.StatusConflict, "No previous search to continue. Start with a new search first.")
			return
		}
		logger.Error("[more] continuation failed",
			logger.String("sessionID", sessionID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !result.OK() {
		h.writeSearchError(w, result)
		return
	}

	mem.Apply(result.SelectedTrackIDs, *result.Context, result.NextIndex)
	if err := h.memStore.Save(r.Context(), sessionID, mem); err != nil {
		logger.Error("[more] failed to save session memory",
			logger.String("sessionID", sessionID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.recordHistory(r, sessionID, result)

	writeJSON(w, http.StatusOK, result)
}

// writeSearchError maps an engine error result onto an HTTP response.
// The body keeps the engine's fixed user-facing sentence.
func (h *APIHandler) writeSearchError(w http.ResponseWriter, result recommend.Result) {
	status := http.StatusBadGateway
	if result.ErrKind == recommend.ErrNoMatch {
		status = http.StatusNotFound
	}
	writeJSON(w, status, result)
}

// recordHistory stores a history row for a fulfilled request. History is
// best effort; a failed insert never fails the request that produced it.
func (h *APIHandler) recordHistory(r *http.Request, sessionID string, result recommend.Result) {
	if h.historyRepo == nil {
		return
	}

	entry := &model.RecommendationHistory{
		SessionID:    sessionID,
		ContextKind:  result.Context.Kind,
		ContextValue: result.Context.Value,
	}
	entry.SetTrackIDs(result.SelectedTrackIDs)

	if userID, err := GetUserIDFromContext(r.Context()); err == nil {
		entry.UserID = userID
	}

	if err := h.historyRepo.Create(r.Context(), entry); err != nil {
		logger.Warn("[history] failed to record entry",
			logger.String("sessionID", sessionID),
			logger.ErrorField(err))
	}
}
