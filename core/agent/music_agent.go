package agent

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"MoodFM/logger"
	"MoodFM/model"
)

// MusicAgentConfig contains configuration for the music agent.
type MusicAgentConfig struct {
	APIBaseURL  string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// MusicAgent handles chat interactions with the AI model.
type MusicAgent struct {
	config     *MusicAgentConfig
	httpClient *http.Client
}

// Intent is a structured recommendation request extracted from a model reply.
type Intent struct {
	Kind  string // one of model.ContextArtist/Genre/Mood/Track, or "more"
	Value string // empty for "more"
}

// IntentMore asks for the next batch from the session's previous search.
const IntentMore = "more"

// System prompt for the music agent. The model answers conversationally and
// signals a concrete recommendation request with exactly one intent tag at
// the end of its reply.
const MusicAgentSystemPrompt = `You are MoodFM's music assistant. You chat with users about music and
help them discover tracks.

You cannot search for music yourself. When the user wants recommendations,
end your reply with exactly ONE intent tag. The tag is consumed by the
application, never shown to the user, so keep your visible text natural.

Available tags:
- <search_artist>artist name</search_artist> when the user names or asks about an artist
- <search_genre>genre name</search_genre> when the user asks for a genre
- <search_mood>mood word</search_mood> when the user describes a mood or feeling
- <search_track>track title</search_track> when the user names a specific song
- <more/> when the user asks for more results like the previous ones

Rules:
1. At most one tag per reply, always at the very end.
2. Put only the search term inside the tag, never your reply text.
3. If the user just wants to chat, reply without any tag.
4. Never tell the user to search for themselves.

Examples:
User: "play me something by Daft Punk"
You: "Great choice, let me pull up some Daft Punk.<search_artist>Daft Punk</search_artist>"

User: "I'm feeling a bit down today"
You: "Sorry to hear that. Here is something gentle to match the mood.<search_mood>sad</search_mood>"

User: "more please"
You: "Coming right up.<more/>"`

// NewMusicAgent creates a new music agent.
func NewMusicAgent(config *MusicAgentConfig) *MusicAgent {
	return &MusicAgent{
		config: config,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // Longer timeout for streaming
		},
	}
}

var (
	intentPattern = regexp.MustCompile(`<(search_artist|search_genre|search_mood|search_track)>(.*?)</(search_artist|search_genre|search_mood|search_track)>`)
	morePattern   = regexp.MustCompile(`<more\s*/?>`)
)

var tagToKind = map[string]string{
	"search_artist": model.ContextArtist,
	"search_genre":  model.ContextGenre,
	"search_mood":   model.ContextMood,
	"search_track":  model.ContextTrack,
}

// ParseIntent extracts the intent tag from a model reply.
// It returns the reply text with all tags stripped and the intent, or nil
// when the reply carries no tag. Only the first tag counts.
func (a *MusicAgent) ParseIntent(content string) (string, *Intent) {
	var intent *Intent

	if matches := intentPattern.FindStringSubmatch(content); len(matches) >= 3 {
		intent = &Intent{
			Kind:  tagToKind[matches[1]],
			Value: strings.TrimSpace(matches[2]),
		}
	} else if morePattern.MatchString(content) {
		intent = &Intent{Kind: IntentMore}
	}

	clean := intentPattern.ReplaceAllString(content, "")
	clean = morePattern.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)

	if intent != nil {
		logger.Debug("[MusicAgent] parsed intent tag",
			logger.String("kind", intent.Kind),
			logger.String("value", intent.Value))
	}

	return clean, intent
}

// buildMessages constructs the message array for the API call.
func (a *MusicAgent) buildMessages(history []*model.ChatMessage, userMessage string) []model.OpenAIChatMessage {
	messages := make([]model.OpenAIChatMessage, 0, len(history)+2)

	messages = append(messages, model.OpenAIChatMessage{
		Role:    "system",
		Content: MusicAgentSystemPrompt,
	})

	for _, msg := range history {
		messages = append(messages, model.OpenAIChatMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	messages = append(messages, model.OpenAIChatMessage{
		Role:    "user",
		Content: userMessage,
	})

	return messages
}

// Chat sends a message and returns the complete response.
func (a *MusicAgent) Chat(ctx context.Context, history []*model.ChatMessage, userMessage string) (string, error) {
	messages := a.buildMessages(history, userMessage)

	reqBody := model.OpenAIChatRequest{
		Model:       a.config.Model,
		Messages:    messages,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
		Stream:      false,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.config.APIBaseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp model.OpenAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// StreamCallback is called for each chunk of the streaming response.
type StreamCallback func(chunk string) error

// ChatStream sends a message and streams the response.
// If streaming fails to produce content, it falls back to non-streaming mode.
func (a *MusicAgent) ChatStream(ctx context.Context, history []*model.ChatMessage, userMessage string, callback StreamCallback) (string, error) {
	result, err := a.chatStreamInternal(ctx, history, userMessage, callback)
	if err != nil {
		logger.Warn("Streaming chat failed, falling back to non-streaming",
			logger.ErrorField(err))
		return a.Chat(ctx, history, userMessage)
	}

	if result == "" {
		logger.Warn("Streaming returned empty response, falling back to non-streaming")
		nonStreamResult, err := a.Chat(ctx, history, userMessage)
		if err != nil {
			return "", err
		}
		if callback != nil {
			callback(nonStreamResult)
		}
		return nonStreamResult, nil
	}

	return result, nil
}

// chatStreamInternal is the internal streaming implementation.
func (a *MusicAgent) chatStreamInternal(ctx context.Context, history []*model.ChatMessage, userMessage string, callback StreamCallback) (string, error) {
	messages := a.buildMessages(history, userMessage)

	reqBody := model.OpenAIChatRequest{
		Model:       a.config.Model,
		Messages:    messages,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
		Stream:      true,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	logger.Info("Sending streaming chat request",
		logger.String("model", a.config.Model),
		logger.Int("historyCount", len(history)),
		logger.Int("maxTokens", a.config.MaxTokens))

	req, err := http.NewRequestWithContext(ctx, "POST", a.config.APIBaseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var fullContent strings.Builder
	reader := bufio.NewReader(resp.Body)

	for {
		select {
		case <-ctx.Done():
			return fullContent.String(), ctx.Err()
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return fullContent.String(), fmt.Errorf("failed to read stream: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			break
		}

		var chunk model.OpenAIStreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			logger.Warn("Failed to parse stream chunk",
				logger.String("data", data),
				logger.ErrorField(err))
			continue
		}

		if len(chunk.Choices) > 0 {
			delta := chunk.Choices[0].Delta
			if delta.Content != "" {
				fullContent.WriteString(delta.Content)

				if callback != nil {
					if err := callback(delta.Content); err != nil {
						// Keep draining the stream; one failed write should
						// not kill the whole response.
						logger.Warn("Callback error during streaming, continuing",
							logger.ErrorField(err))
					}
				}
			}
		}
	}

	return fullContent.String(), nil
}
