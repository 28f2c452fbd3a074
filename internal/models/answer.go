package models

import (
	"time"

	"github.com/google/uuid"
)

type Answer struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoomID         uuid.UUID `gorm:"type:uuid;not null;index" json:"room_id"`
	QuestionID     uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Text           string    `gorm:"type:text;not null" json:"text"`
	AuthorNickname string    `gorm:"size:100;not null" json:"author_nickname"`
	IsRevealed     bool      `gorm:"not null;default:false" json:"is_revealed"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}
