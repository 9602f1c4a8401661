package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"MoodFM/core/agent"
	"MoodFM/core/memory"
	"MoodFM/core/recommend"
	"MoodFM/logger"
	"MoodFM/model"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 30 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // must be less than pongWait
	maxMessageSize = 8192

	chatHistoryLimit = 50
)

// wsWriter serializes writes to a WebSocket connection. gorilla/websocket
// allows at most one concurrent writer, and the ping loop writes alongside
// the message handler.
type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsWriter) WriteJSON(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteJSON(v)
}

func (w *wsWriter) Ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteMessage(websocket.PingMessage, nil)
}

// ChatHandler runs the streaming chat channel. The agent's replies are
// streamed chunk by chunk; when a reply carries an intent tag, the engine
// runs the search and the rendered track table follows as its own message.
type ChatHandler struct {
	musicAgent  *agent.MusicAgent
	recommender *recommend.Recommender
	memStore    memory.Store
	api         *APIHandler
	upgrader    websocket.Upgrader
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(agentConfig *agent.MusicAgentConfig, recommender *recommend.Recommender, memStore memory.Store, api *APIHandler) *ChatHandler {
	return &ChatHandler{
		musicAgent:  agent.NewMusicAgent(agentConfig),
		recommender: recommender,
		memStore:    memStore,
		api:         api,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for now
			},
		},
	}
}

// WebSocketChatHandler handles WebSocket connections for streaming chat.
// The session ID comes from the 'session' query parameter and scopes the
// recommendation memory, same as the REST search endpoints.
func (h *ChatHandler) WebSocketChatHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "Query parameter 'session' is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Failed to upgrade WebSocket",
			logger.String("sessionID", sessionID),
			logger.ErrorField(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	logger.Info("WebSocket connected", logger.String("sessionID", sessionID))

	writer := &wsWriter{conn: conn}

	done := make(chan struct{})
	go h.pingLoop(writer, done)
	defer close(done)

	// Chat history lives with the connection.
	var history []*model.ChatMessage

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket unexpected close",
					logger.String("sessionID", sessionID),
					logger.ErrorField(err))
			}
			break
		}

		conn.SetReadDeadline(time.Now().Add(pongWait))

		var msgReq model.ChatMessageRequest
		if err := json.Unmarshal(message, &msgReq); err != nil {
			h.sendWebSocketError(writer, "Invalid message format")
			continue
		}

		if msgReq.Content == "" {
			h.sendWebSocketError(writer, "Message content is required")
			continue
		}

		history = h.handleChatMessage(writer, sessionID, history, msgReq.Content)
		if len(history) > chatHistoryLimit {
			history = history[len(history)-chatHistoryLimit:]
		}
	}
}

// pingLoop sends periodic pings to keep the connection alive.
func (h *ChatHandler) pingLoop(writer *wsWriter, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := writer.Ping(); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// handleChatMessage streams the agent's reply and fulfils any intent it
// carries. It returns the updated chat history.
func (h *ChatHandler) handleChatMessage(writer *wsWriter, sessionID string, history []*model.ChatMessage, content string) []*model.ChatMessage {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	h.sendWebSocketMessage(writer, model.WebSocketMessage{Type: "start"})

	fullResponse, err := h.musicAgent.ChatStream(ctx, history, content, func(chunk string) error {
		return h.sendWebSocketMessage(writer, model.WebSocketMessage{
			Type:    "content",
			Content: chunk,
		})
	})
	if err != nil {
		logger.Error("Failed to get agent response",
			logger.String("sessionID", sessionID),
			logger.ErrorField(err))
		h.sendWebSocketError(writer, "Failed to get a response. Please try again.")
		return history
	}

	cleanContent, intent := h.musicAgent.ParseIntent(fullResponse)

	if intent != nil {
		logger.Info("[ChatHandler] fulfilling intent",
			logger.String("sessionID", sessionID),
			logger.String("kind", intent.Kind),
			logger.String("value", intent.Value))

		tableOrError := h.fulfillIntent(ctx, sessionID, intent)
		h.sendWebSocketMessage(writer, model.WebSocketMessage{
			Type:    "tracks",
			Content: tableOrError,
		})
	}

	h.sendWebSocketMessage(writer, model.WebSocketMessage{Type: "end"})

	history = append(history,
		&model.ChatMessage{Role: "user", Content: content},
		&model.ChatMessage{Role: "assistant", Content: cleanContent},
	)
	return history
}

// fulfillIntent runs the engine search for a parsed intent and returns the
// text to show the user, either the rendered track table or the engine's
// error sentence.
func (h *ChatHandler) fulfillIntent(ctx context.Context, sessionID string, intent *agent.Intent) string {
	lock := h.api.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	mem, err := h.memStore.Load(ctx, sessionID)
	if err != nil {
		logger.Error("[ChatHandler] failed to load session memory",
			logger.String("sessionID", sessionID),
			logger.ErrorField(err))
		return "Sorry, I couldn't process your request right now. Please try again later."
	}

	opts := recommend.SearchOptions{Exclude: mem.SeenSet()}

	var result recommend.Result
	switch intent.Kind {
	case model.ContextArtist:
		result = h.recommender.SearchByArtist(ctx, intent.Value, opts)
	case model.ContextGenre:
		result = h.recommender.SearchByGenre(ctx, intent.Value, opts)
	case model.ContextMood:
		result = h.recommender.SearchByMoodWithGenreFallback(ctx, intent.Value, opts)
	case model.ContextTrack:
		result = h.recommender.SearchByTrack(ctx, intent.Value, opts)
	case agent.IntentMore:
		var contErr error
		result, contErr = h.recommender.Continue(ctx, mem, recommend.SearchOptions{})
		if contErr != nil {
			return "You haven't searched for anything yet. Ask me for an artist, genre, mood or song first."
		}
	default:
		return "Sorry, I didn't understand that request."
	}

	if !result.OK() {
		return result.Message
	}

	mem.Apply(result.SelectedTrackIDs, *result.Context, result.NextIndex)
	if err := h.memStore.Save(ctx, sessionID, mem); err != nil {
		logger.Error("[ChatHandler] failed to save session memory",
			logger.String("sessionID", sessionID),
			logger.ErrorField(err))
	}

	return result.ResponseText
}

// sendWebSocketMessage sends a message through WebSocket with proper deadline.
func (h *ChatHandler) sendWebSocketMessage(writer *wsWriter, msg model.WebSocketMessage) error {
	return writer.WriteJSON(msg)
}

// sendWebSocketError sends an error message through WebSocket.
func (h *ChatHandler) sendWebSocketError(writer *wsWriter, errMsg string) {
	h.sendWebSocketMessage(writer, model.WebSocketMessage{
		Type:    "error",
		Content: errMsg,
	})
}
