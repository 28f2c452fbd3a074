package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unboxus/unbox-server/internal/models"
)

// RevealCoordinator tracks per-answer reveal state for one room and keeps it
// consistent with answer snapshots arriving from other sessions.
//
// Reveal policy: revealing persists (write first, local apply only after the
// store acknowledges). Re-hiding is a presentation affordance and stays local
// to this coordinator; the stored is_revealed flag never goes back to false,
// so a host that reconnects starts from the persisted state.
type RevealCoordinator struct {
	store  Store
	roomID uuid.UUID

	mu       sync.Mutex
	revealed map[uuid.UUID]bool
	hidden   map[uuid.UUID]bool      // local re-hide overlay
	pending  map[uuid.UUID]time.Time // reveals acked by the store but not yet seen in a snapshot
}

func NewRevealCoordinator(store Store, room *models.Room) *RevealCoordinator {
	rc := &RevealCoordinator{
		store:    store,
		roomID:   room.ID,
		revealed: make(map[uuid.UUID]bool),
		hidden:   make(map[uuid.UUID]bool),
		pending:  make(map[uuid.UUID]time.Time),
	}
	for _, a := range room.Answers {
		if a.IsRevealed {
			rc.revealed[a.ID] = true
		}
	}
	return rc
}

// Toggle flips the visible state of one answer and reports the new state. A
// failed store write leaves everything exactly as it was.
func (rc *RevealCoordinator) Toggle(ctx context.Context, answerID uuid.UUID) (bool, error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if !rc.revealed[answerID] {
		if err := rc.store.RevealAnswer(ctx, answerID); err != nil {
			return false, fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}
		rc.revealed[answerID] = true
		delete(rc.hidden, answerID)
		rc.pending[answerID] = time.Now()
		return true, nil
	}

	// Already persisted as revealed: hiding and re-showing is local only.
	if rc.hidden[answerID] {
		delete(rc.hidden, answerID)
		return true, nil
	}
	rc.hidden[answerID] = true
	return false, nil
}

// IsRevealed reports the effective, overlay-adjusted state.
func (rc *RevealCoordinator) IsRevealed(answerID uuid.UUID) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.revealed[answerID] && !rc.hidden[answerID]
}

// ApplySnapshot reconciles against a full answer snapshot from the store or
// the push channel. A snapshot that predates an acknowledged reveal must not
// flip that answer back to hidden; once the snapshot confirms the reveal the
// in-flight marker is dropped.
func (rc *RevealCoordinator) ApplySnapshot(answers []models.Answer) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	fresh := make(map[uuid.UUID]bool, len(answers))
	for _, a := range answers {
		fresh[a.ID] = true
		if a.IsRevealed {
			rc.revealed[a.ID] = true
			delete(rc.pending, a.ID)
			continue
		}
		if _, inflight := rc.pending[a.ID]; inflight {
			continue // stale snapshot, our write is newer
		}
		delete(rc.revealed, a.ID)
		delete(rc.hidden, a.ID)
	}

	// Forget answers that no longer exist.
	for id := range rc.revealed {
		if !fresh[id] {
			delete(rc.revealed, id)
			delete(rc.hidden, id)
			delete(rc.pending, id)
		}
	}
}

// View returns the snapshot with the local overlay applied, for host display.
func (rc *RevealCoordinator) View(answers []models.Answer) []models.Answer {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	out := make([]models.Answer, len(answers))
	copy(out, answers)
	for i := range out {
		out[i].IsRevealed = rc.revealed[out[i].ID] && !rc.hidden[out[i].ID]
	}
	return out
}

// RevealService hands out one coordinator per room and applies the phase
// guard: reveal operations only make sense while the room is unboxing.
type RevealService struct {
	store Store

	mu    sync.Mutex
	rooms map[uuid.UUID]*RevealCoordinator
}

func NewRevealService(store Store) *RevealService {
	return &RevealService{store: store, rooms: make(map[uuid.UUID]*RevealCoordinator)}
}

func (s *RevealService) Coordinator(room *models.Room) *RevealCoordinator {
	s.mu.Lock()
	defer s.mu.Unlock()
	rc, ok := s.rooms[room.ID]
	if !ok {
		rc = NewRevealCoordinator(s.store, room)
		s.rooms[room.ID] = rc
	}
	return rc
}

// Toggle checks the lifecycle guard and answer ownership before delegating.
func (s *RevealService) Toggle(ctx context.Context, room *models.Room, answerID uuid.UUID) (bool, error) {
	if room.Status != models.StatusUnboxing {
		return false, ErrRoomNotUnboxing
	}
	owned := false
	for _, a := range room.Answers {
		if a.ID == answerID {
			owned = true
			break
		}
	}
	if !owned {
		return false, ErrAnswerNotFound
	}
	return s.Coordinator(room).Toggle(ctx, answerID)
}

// Reconcile feeds a fresh snapshot to the room's coordinator, if one exists.
func (s *RevealService) Reconcile(roomID uuid.UUID, answers []models.Answer) {
	s.mu.Lock()
	rc, ok := s.rooms[roomID]
	s.mu.Unlock()
	if ok {
		rc.ApplySnapshot(answers)
	}
}

// Forget drops a completed room's coordinator.
func (s *RevealService) Forget(roomID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, roomID)
}
