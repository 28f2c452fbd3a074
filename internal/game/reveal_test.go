package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/unboxus/unbox-server/internal/models"
)

func roomWithAnswers(store *fakeStore, n int) *models.Room {
	room := newTestRoom(store, 1)
	room.Status = models.StatusUnboxing
	now := time.Now()
	for i := 0; i < n; i++ {
		a := models.Answer{
			ID:             uuid.New(),
			RoomID:         room.ID,
			QuestionID:     room.Questions[0].ID,
			Text:           "something",
			AuthorNickname: "alice",
			CreatedAt:      now.Add(time.Duration(i) * time.Second),
		}
		room.Answers = append(room.Answers, a)
		store.answers[room.ID] = append(store.answers[room.ID], a)
	}
	return room
}

func TestRevealPersistsBeforeLocalApply(t *testing.T) {
	store := newFakeStore()
	room := roomWithAnswers(store, 1)
	svc := NewRevealService(store)
	id := room.Answers[0].ID

	visible, err := svc.Toggle(context.Background(), room, id)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !visible {
		t.Errorf("first toggle should reveal")
	}
	if !store.answers[room.ID][0].IsRevealed {
		t.Errorf("reveal was not persisted")
	}
}

func TestRevealFailedWriteLeavesHidden(t *testing.T) {
	store := newFakeStore()
	room := roomWithAnswers(store, 1)
	store.failWrites = true
	svc := NewRevealService(store)
	id := room.Answers[0].ID

	_, err := svc.Toggle(context.Background(), room, id)
	if !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("got %v, want ErrWriteFailed", err)
	}
	if svc.Coordinator(room).IsRevealed(id) {
		t.Errorf("answer marked revealed after failed write")
	}
}

func TestToggleRoundTrip(t *testing.T) {
	store := newFakeStore()
	room := roomWithAnswers(store, 2)
	svc := NewRevealService(store)
	ctx := context.Background()
	id, other := room.Answers[0].ID, room.Answers[1].ID

	if _, err := svc.Toggle(ctx, room, id); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	visible, err := svc.Toggle(ctx, room, id)
	if err != nil {
		t.Fatalf("re-hide: %v", err)
	}
	if visible {
		t.Errorf("second toggle should hide")
	}
	// Re-hide is local; the store keeps the answer revealed.
	if !store.answers[room.ID][0].IsRevealed {
		t.Errorf("re-hide must not be written to the store")
	}
	if store.revealCalls != 1 {
		t.Errorf("re-hide issued %d store writes, want 1 total", store.revealCalls)
	}

	visible, err = svc.Toggle(ctx, room, id)
	if err != nil || !visible {
		t.Fatalf("third toggle should re-show locally, got visible=%v err=%v", visible, err)
	}
	if svc.Coordinator(room).IsRevealed(other) {
		t.Errorf("toggling one answer touched another")
	}
}

func TestToggleRejectedOutsideUnboxing(t *testing.T) {
	store := newFakeStore()
	room := roomWithAnswers(store, 1)
	room.Status = models.StatusCollecting
	svc := NewRevealService(store)

	_, err := svc.Toggle(context.Background(), room, room.Answers[0].ID)
	if !errors.Is(err, ErrRoomNotUnboxing) {
		t.Fatalf("got %v, want ErrRoomNotUnboxing", err)
	}
}

func TestToggleUnknownAnswer(t *testing.T) {
	store := newFakeStore()
	room := roomWithAnswers(store, 1)
	svc := NewRevealService(store)

	_, err := svc.Toggle(context.Background(), room, uuid.New())
	if !errors.Is(err, ErrAnswerNotFound) {
		t.Fatalf("got %v, want ErrAnswerNotFound", err)
	}
}

func TestStaleSnapshotDoesNotClobberAckedReveal(t *testing.T) {
	store := newFakeStore()
	room := roomWithAnswers(store, 1)
	svc := NewRevealService(store)
	id := room.Answers[0].ID

	if _, err := svc.Toggle(context.Background(), room, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	// Snapshot taken before our write still says is_revealed=false.
	stale := []models.Answer{room.Answers[0]}
	stale[0].IsRevealed = false
	svc.Reconcile(room.ID, stale)

	if !svc.Coordinator(room).IsRevealed(id) {
		t.Errorf("stale snapshot clobbered an acknowledged reveal")
	}

	// A snapshot carrying the reveal settles the in-flight marker; later
	// snapshots saying hidden now win (someone else's state is fresher).
	confirmed := []models.Answer{room.Answers[0]}
	confirmed[0].IsRevealed = true
	svc.Reconcile(room.ID, confirmed)
	svc.Reconcile(room.ID, stale)
	if svc.Coordinator(room).IsRevealed(id) {
		t.Errorf("post-confirmation snapshot was ignored")
	}
}

func TestViewAppliesOverlay(t *testing.T) {
	store := newFakeStore()
	room := roomWithAnswers(store, 2)
	svc := NewRevealService(store)
	ctx := context.Background()
	rc := svc.Coordinator(room)

	if _, err := svc.Toggle(ctx, room, room.Answers[0].ID); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if _, err := svc.Toggle(ctx, room, room.Answers[0].ID); err != nil {
		t.Fatalf("re-hide: %v", err)
	}

	view := rc.View(store.answers[room.ID])
	if view[0].IsRevealed {
		t.Errorf("overlay-hidden answer shown as revealed")
	}
	if view[1].IsRevealed {
		t.Errorf("untouched answer shown as revealed")
	}
	// The source slice must stay untouched.
	if !store.answers[room.ID][0].IsRevealed {
		t.Errorf("View mutated its input")
	}
}
