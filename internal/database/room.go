package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unboxus/unbox-server/internal/game"
	"github.com/unboxus/unbox-server/internal/models"
	"github.com/unboxus/unbox-server/pkg/roomcode"
)

// QuestionDraft is a question as composed client-side, before the store has
// assigned it an id.
type QuestionDraft struct {
	Text     string `json:"text"`
	IsCustom bool   `json:"is_custom"`
}

const codeAttempts = 5

// CreateRoom persists a room and its question list in one transaction. The
// code is regenerated on collision, bounded, rather than trusting the
// generator to be unique.
func (d *Database) CreateRoom(ctx context.Context, name, theme string, participantCount int, questions []QuestionDraft) (*models.Room, error) {
	var lastErr error
	for attempt := 0; attempt < codeAttempts; attempt++ {
		room := &models.Room{
			Name:             name,
			Code:             roomcode.Generate(),
			Theme:            theme,
			ParticipantCount: participantCount,
			Status:           models.StatusCollecting,
			CreatedAt:        time.Now(),
		}

		err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(room).Error; err != nil {
				return err
			}
			for i, q := range questions {
				question := models.Question{
					RoomID:     room.ID,
					Text:       q.Text,
					IsCustom:   q.IsCustom,
					OrderIndex: i,
				}
				if err := tx.Create(&question).Error; err != nil {
					return err
				}
				room.Questions = append(room.Questions, question)
			}
			return nil
		})
		if err == nil {
			return room, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %v", game.ErrCreateFailed, err)
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", game.ErrCodeCollision, lastErr)
}

func (d *Database) loadRoom(ctx context.Context, query string, args ...interface{}) (*models.Room, error) {
	var room models.Room
	err := d.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where(query, args...).
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, game.ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (d *Database) GetRoomByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return d.loadRoom(ctx, "id = ?", id)
}

// GetRoomByCode looks a room up by its human-typed code, case-insensitively.
func (d *Database) GetRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	return d.loadRoom(ctx, "code = ?", roomcode.Normalize(code))
}

func (d *Database) UpdateRoomStatus(ctx context.Context, id uuid.UUID, status models.RoomStatus) error {
	res := d.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return game.ErrRoomNotFound
	}
	return nil
}

func (d *Database) UpdateQuestionIndex(ctx context.Context, id uuid.UUID, index int) error {
	res := d.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Update("current_question_index", index)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return game.ErrRoomNotFound
	}
	return nil
}
