package models

import "gorm.io/gorm"

// ChatLog stores AI assistant interactions so the chat page can show
// recent context and the answers can be reviewed later.
type ChatLog struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	SessionID string `gorm:"index;size:100" json:"session_id"`

	Question string `gorm:"type:text" json:"question"`
	Answer   string `gorm:"type:text" json:"answer"`
	Language string `gorm:"size:2;default:ml" json:"language"` // "ml" | "en"
	Category string `gorm:"size:20;default:GENERAL" json:"category"`
}
