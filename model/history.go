package model

import (
	"strconv"
	"strings"
	"time"
)

// RecommendationHistory records one fulfilled recommendation request.
// TrackIDs is stored as a comma separated list to keep the row flat.
type RecommendationHistory struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       int64     `json:"userId" gorm:"index"`
	SessionID    string    `json:"sessionId" gorm:"size:64;index;not null"`
	ContextKind  string    `json:"contextKind" gorm:"size:16;not null"`
	ContextValue string    `json:"contextValue" gorm:"size:255;not null"`
	TrackIDs     string    `json:"-" gorm:"type:text"`
	TrackCount   int       `json:"trackCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName sets the history table name for GORM.
func (RecommendationHistory) TableName() string {
	return "recommendation_history"
}

// SetTrackIDs encodes the track IDs into the stored form.
func (h *RecommendationHistory) SetTrackIDs(ids []int64) {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	h.TrackIDs = strings.Join(parts, ",")
	h.TrackCount = len(ids)
}

// TrackIDList decodes the stored track IDs. Malformed entries are skipped.
func (h *RecommendationHistory) TrackIDList() []int64 {
	if h.TrackIDs == "" {
		return nil
	}
	parts := strings.Split(h.TrackIDs, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
