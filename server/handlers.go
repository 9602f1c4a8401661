package server

import (
	"encoding/json"
	"hash/fnv"
	"net/http"
	"sync"

	"MoodFM/config"
	"MoodFM/core/memory"
	"MoodFM/core/recommend"
	"MoodFM/repository"
)

// sessionLockCount is the number of lock stripes for per-session serialization.
const sessionLockCount = 64

// APIHandler bundles the dependencies shared by the HTTP handlers.
type APIHandler struct {
	recommender *recommend.Recommender
	memStore    memory.Store
	userRepo    repository.UserRepository
	historyRepo repository.HistoryRepository
	cfg         *config.Config

	// sessionLocks serializes concurrent requests for the same session so
	// that load, search and save act as one unit per session.
	sessionLocks [sessionLockCount]sync.Mutex
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(
	recommender *recommend.Recommender,
	memStore memory.Store,
	userRepo repository.UserRepository,
	historyRepo repository.HistoryRepository,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		recommender: recommender,
		memStore:    memStore,
		userRepo:    userRepo,
		historyRepo: historyRepo,
		cfg:         cfg,
	}
}

// sessionLock returns the lock stripe for a session ID.
func (h *APIHandler) sessionLock(sessionID string) *sync.Mutex {
	hash := fnv.New32a()
	hash.Write([]byte(sessionID))
	return &h.sessionLocks[hash.Sum32()%sessionLockCount]
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// HealthHandler reports liveness.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
