package models

import "github.com/google/uuid"

type Question struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoomID     uuid.UUID `gorm:"type:uuid;not null;index" json:"room_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	IsCustom   bool      `gorm:"not null;default:false" json:"is_custom"`
	OrderIndex int       `gorm:"not null" json:"order_index"`
}
