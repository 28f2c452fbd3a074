package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/unboxus/unbox-server/internal/models"
)

// transitions lists the only legal status moves. Status never goes backward.
var transitions = map[models.RoomStatus]models.RoomStatus{
	models.StatusCollecting: models.StatusUnboxing,
	models.StatusUnboxing:   models.StatusCompleted,
}

type Lifecycle struct {
	store Store
}

func NewLifecycle(store Store) *Lifecycle {
	return &Lifecycle{store: store}
}

// Advance moves the room to the next status. The store write happens first;
// the in-memory room is only updated once the write succeeds, so a failed
// write leaves the caller's view unchanged.
func (l *Lifecycle) Advance(ctx context.Context, room *models.Room, next models.RoomStatus) error {
	if transitions[room.Status] != next {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, room.Status, next)
	}
	if err := l.store.UpdateRoomStatus(ctx, room.ID, next); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	room.Status = next
	return nil
}

// SetQuestionIndex persists the host's cursor so a reloading host resumes at
// the same question. The index must address an existing question.
func (l *Lifecycle) SetQuestionIndex(ctx context.Context, room *models.Room, index int) error {
	if index < 0 || (len(room.Questions) > 0 && index >= len(room.Questions)) {
		return fmt.Errorf("%w: question index %d out of range", ErrValidation, index)
	}
	if err := l.store.UpdateQuestionIndex(ctx, room.ID, index); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	room.CurrentQuestionIndex = index
	return nil
}

// SubmitAnswers validates and persists one participant's full batch. Nothing
// is written unless every question in the room has a non-empty answer.
func (l *Lifecycle) SubmitAnswers(ctx context.Context, room *models.Room, nickname string, entries []AnswerEntry) error {
	if room.Status != models.StatusCollecting {
		return ErrRoomNotAcceptingAnswers
	}
	if strings.TrimSpace(nickname) == "" {
		return fmt.Errorf("%w: nickname is required", ErrValidation)
	}

	byQuestion := make(map[uuid.UUID]string, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Text) == "" {
			return fmt.Errorf("%w: empty answer for question %s", ErrValidation, e.QuestionID)
		}
		byQuestion[e.QuestionID] = e.Text
	}

	known := make(map[uuid.UUID]bool, len(room.Questions))
	for _, q := range room.Questions {
		known[q.ID] = true
		if _, ok := byQuestion[q.ID]; !ok {
			return fmt.Errorf("%w: question %q left unanswered", ErrValidation, q.Text)
		}
	}
	for id := range byQuestion {
		if !known[id] {
			return fmt.Errorf("%w: question %s does not belong to this room", ErrValidation, id)
		}
	}

	if err := l.store.SubmitAnswers(ctx, room.ID, nickname, entries); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}
