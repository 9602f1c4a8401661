package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"MoodFM/logger"
	"MoodFM/model"

	"github.com/go-redis/redis/v8"
	"github.com/minio/minio-go/v7"
)

// Store loads and saves per-session continuation state. A session that was
// never saved (or whose blob is corrupt) loads as empty defaults. Sessions
// are never deleted here; retention is someone else's policy.
type Store interface {
	Load(ctx context.Context, sessionID string) (*model.SessionMemory, error)
	Save(ctx context.Context, sessionID string, mem *model.SessionMemory) error
}

const (
	blobPrefix  = "music_memory/"
	cachePrefix = "music:memory:"
	cacheTTL    = 24 * time.Hour
)

// blobStore keeps the durable copy of each session's memory as a JSON blob
// in object storage, with a Redis cache in front of it. The cache is
// advisory: cache failures are logged and the blob store remains the source
// of truth.
type blobStore struct {
	cache  *redis.Client
	blobs  *minio.Client
	bucket string
}

// NewStore creates a session memory store. The cache client may be nil, in
// which case every load goes to object storage.
func NewStore(cache *redis.Client, blobs *minio.Client, bucket string) Store {
	return &blobStore{
		cache:  cache,
		blobs:  blobs,
		bucket: bucket,
	}
}

func blobName(sessionID string) string {
	return blobPrefix + sessionID + ".json"
}

func cacheKey(sessionID string) string {
	return cachePrefix + sessionID
}

// Load returns the session's memory, falling back from cache to blob
// storage, and to empty defaults when the session is unknown or its stored
// form no longer parses.
func (s *blobStore) Load(ctx context.Context, sessionID string) (*model.SessionMemory, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cacheKey(sessionID)).Result()
		if err == nil {
			var mem model.SessionMemory
			if jsonErr := json.Unmarshal([]byte(raw), &mem); jsonErr == nil {
				return &mem, nil
			}
			logger.Warn("[memory] corrupt cache entry, falling back to blob store",
				logger.String("sessionID", sessionID))
		} else if err != redis.Nil {
			logger.Warn("[memory] cache read failed",
				logger.String("sessionID", sessionID),
				logger.ErrorField(err))
		}
	}

	object, err := s.blobs.GetObject(ctx, s.bucket, blobName(sessionID), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open memory blob for session %s: %w", sessionID, err)
	}
	defer object.Close()

	var mem model.SessionMemory
	if err := json.NewDecoder(object).Decode(&mem); err != nil {
		// Absent object or corrupt JSON both mean a fresh session.
		if resp := minio.ToErrorResponse(err); resp.Code != "" && resp.Code != "NoSuchKey" {
			return nil, fmt.Errorf("failed to read memory blob for session %s: %w", sessionID, err)
		}
		return model.NewSessionMemory(), nil
	}
	if mem.SeenTrackIDs == nil {
		mem.SeenTrackIDs = []int64{}
	}

	s.fillCache(ctx, sessionID, &mem)
	return &mem, nil
}

// Save stamps the memory and writes it through to both stores.
func (s *blobStore) Save(ctx context.Context, sessionID string, mem *model.SessionMemory) error {
	mem.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(mem)
	if err != nil {
		return fmt.Errorf("failed to marshal memory for session %s: %w", sessionID, err)
	}

	_, err = s.blobs.PutObject(ctx, s.bucket, blobName(sessionID),
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: "application/json",
		})
	if err != nil {
		return fmt.Errorf("failed to write memory blob for session %s: %w", sessionID, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey(sessionID), data, cacheTTL).Err(); err != nil {
			logger.Warn("[memory] cache write failed",
				logger.String("sessionID", sessionID),
				logger.ErrorField(err))
		}
	}

	return nil
}

func (s *blobStore) fillCache(ctx context.Context, sessionID string, mem *model.SessionMemory) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(mem)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(sessionID), data, cacheTTL).Err(); err != nil {
		logger.Warn("[memory] cache fill failed",
			logger.String("sessionID", sessionID),
			logger.ErrorField(err))
	}
}
