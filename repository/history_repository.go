package repository

import (
	"context"
	"fmt"

	"MoodFM/model"

	"gorm.io/gorm"
)

// HistoryRepository records and queries fulfilled recommendation requests.
type HistoryRepository interface {
	Create(ctx context.Context, entry *model.RecommendationHistory) error
	GetBySession(ctx context.Context, sessionID string, limit int) ([]*model.RecommendationHistory, error)
	GetByUser(ctx context.Context, userID int64, limit int) ([]*model.RecommendationHistory, error)
}

// gormHistoryRepository implements HistoryRepository on GORM.
type gormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new gormHistoryRepository.
func NewGormHistoryRepository(db *gorm.DB) HistoryRepository {
	return &gormHistoryRepository{db: db}
}

// Create stores one history entry.
func (r *gormHistoryRepository) Create(ctx context.Context, entry *model.RecommendationHistory) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create history entry: %w", err)
	}
	return nil
}

// GetBySession returns the most recent entries for a session, newest first.
func (r *gormHistoryRepository) GetBySession(ctx context.Context, sessionID string, limit int) ([]*model.RecommendationHistory, error) {
	var entries []*model.RecommendationHistory
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query history for session %s: %w", sessionID, err)
	}
	return entries, nil
}

// GetByUser returns the most recent entries for a user, newest first.
func (r *gormHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*model.RecommendationHistory, error) {
	var entries []*model.RecommendationHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query history for user %d: %w", userID, err)
	}
	return entries, nil
}
