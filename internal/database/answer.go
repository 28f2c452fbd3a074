package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unboxus/unbox-server/internal/game"
	"github.com/unboxus/unbox-server/internal/models"
)

// SubmitAnswers writes one participant's batch in a single transaction:
// either every answer lands or none do.
func (d *Database) SubmitAnswers(ctx context.Context, roomID uuid.UUID, nickname string, entries []game.AnswerEntry) error {
	now := time.Now()
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			answer := models.Answer{
				RoomID:         roomID,
				QuestionID:     e.QuestionID,
				Text:           e.Text,
				AuthorNickname: nickname,
				CreatedAt:      now,
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *Database) RevealAnswer(ctx context.Context, answerID uuid.UUID) error {
	res := d.db.WithContext(ctx).Model(&models.Answer{}).Where("id = ?", answerID).Update("is_revealed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return game.ErrAnswerNotFound
	}
	return nil
}

// GetAnswers returns a room's answers in insertion order, the form every
// snapshot delivery uses.
func (d *Database) GetAnswers(ctx context.Context, roomID uuid.UUID) ([]models.Answer, error) {
	var answers []models.Answer
	err := d.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at ASC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

// GetAnswersGroupedByParticipant reads the room's answers and hands back the
// nickname grouping.
func (d *Database) GetAnswersGroupedByParticipant(ctx context.Context, roomID uuid.UUID) ([]game.ParticipantGroup, error) {
	answers, err := d.GetAnswers(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return game.AnswersByParticipant(answers), nil
}

// RoomExists is a cheap existence probe used by the ws endpoint.
func (d *Database) RoomExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Count(&count).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return count > 0, nil
}
