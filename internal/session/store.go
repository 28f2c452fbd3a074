package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/unboxus/unbox-server/internal/models"
	"github.com/unboxus/unbox-server/pkg/roomcode"
)

const keyPrefix = "participant:"

// Store keeps the per-device participant record: one active session per
// device, overwritten when the device joins a different room. Records only
// disappear on explicit clearing or TTL expiry, never on page reload.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Save writes the record under the given token, issuing a fresh token when
// the device has none yet.
func (s *Store) Save(ctx context.Context, token string, p models.Participant) (string, error) {
	if token == "" {
		token = roomcode.NewID()
	}
	p.RoomCode = roomcode.Normalize(p.RoomCode)
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, keyPrefix+token, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return token, nil
}

// Get returns the device's session record, or nil when none exists.
func (s *Store) Get(ctx context.Context, token string) (*models.Participant, error) {
	if token == "" {
		return nil, nil
	}
	data, err := s.rdb.Get(ctx, keyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	var p models.Participant
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) Clear(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}

// AlreadySubmitted says whether this session should see the "already
// submitted" terminal view for the room it is currently looking at. A session
// for some other room never blocks submission here.
func AlreadySubmitted(p *models.Participant, currentRoomCode string) bool {
	if p == nil || !p.HasSubmitted {
		return false
	}
	return roomcode.Normalize(p.RoomCode) == roomcode.Normalize(currentRoomCode)
}
