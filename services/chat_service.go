package services

import (
	"github.com/Vanshhsoni/kissan/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chat history is capped per user; older interactions are dropped.
const chatHistoryLimit = 50

type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// SaveInteraction stores one question/answer pair. An empty sessionID
// starts a new session.
func (s *ChatService) SaveInteraction(userID uint, sessionID, question, answer, language, category string) (*models.ChatLog, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if language == "" {
		language = "ml"
	}
	if category == "" {
		category = "GENERAL"
	}

	entry := &models.ChatLog{
		UserID:    userID,
		SessionID: sessionID,
		Question:  question,
		Answer:    answer,
		Language:  language,
		Category:  category,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}

	// Trim history beyond the cap, oldest first
	var total int64
	if err := s.db.Model(&models.ChatLog{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err == nil && total > chatHistoryLimit {
		var ids []uint
		err := s.db.Model(&models.ChatLog{}).
			Where("user_id = ?", userID).
			Order("created_at ASC, id ASC").
			Limit(int(total - chatHistoryLimit)).
			Pluck("id", &ids).Error
		if err == nil && len(ids) > 0 {
			_ = s.db.Unscoped().Delete(&models.ChatLog{}, ids).Error
		}
	}

	return entry, nil
}

func (s *ChatService) Recent(userID uint, limit int) ([]models.ChatLog, error) {
	if limit <= 0 || limit > chatHistoryLimit {
		limit = chatHistoryLimit
	}
	var logs []models.ChatLog
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
