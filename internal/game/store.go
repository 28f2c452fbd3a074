package game

import (
	"context"

	"github.com/google/uuid"

	"github.com/unboxus/unbox-server/internal/models"
)

// AnswerEntry is one question's answer inside a participant's batch.
type AnswerEntry struct {
	QuestionID uuid.UUID `json:"question_id"`
	Text       string    `json:"text"`
}

// Store is the narrow slice of the data store the core logic needs. The
// postgres adapter in internal/database satisfies it; tests use fakes.
type Store interface {
	GetRoomByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	UpdateRoomStatus(ctx context.Context, id uuid.UUID, status models.RoomStatus) error
	UpdateQuestionIndex(ctx context.Context, id uuid.UUID, index int) error
	SubmitAnswers(ctx context.Context, roomID uuid.UUID, nickname string, entries []AnswerEntry) error
	RevealAnswer(ctx context.Context, answerID uuid.UUID) error
	GetAnswers(ctx context.Context, roomID uuid.UUID) ([]models.Answer, error)
}
