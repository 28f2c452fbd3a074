package models

import (
	"time"

	"github.com/google/uuid"
)

type RoomStatus string

const (
	StatusCollecting RoomStatus = "collecting"
	StatusUnboxing   RoomStatus = "unboxing"
	StatusCompleted  RoomStatus = "completed"
)

const (
	ThemeChristmas = "christmas"
	ThemeHorse     = "horse"
)

type Room struct {
	ID                   uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name                 string     `gorm:"not null" json:"name"`
	Code                 string     `gorm:"size:6;not null;uniqueIndex" json:"code"`
	Theme                string     `gorm:"not null;check:theme IN ('christmas','horse')" json:"theme"`
	ParticipantCount     int        `gorm:"default:0" json:"participant_count"`
	Status               RoomStatus `gorm:"size:20;not null;default:'collecting'" json:"status"`
	CurrentQuestionIndex int        `gorm:"not null;default:0" json:"current_question_index"`
	CreatedAt            time.Time  `json:"created_at"`

	Questions []Question `gorm:"foreignKey:RoomID" json:"questions,omitempty"`
	Answers   []Answer   `gorm:"foreignKey:RoomID" json:"answers,omitempty"`
}
