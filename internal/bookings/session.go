package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stagepass/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a session id is unknown or expired.
var ErrSessionNotFound = errors.New("booking session not found")

// Session is the redis-backed state of one checkout flow. A session starts
// anonymous; UserID is filled in once the buyer authenticates.
type Session struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id,omitempty"`
	EventID        string    `json:"event_id"`
	Step           Step      `json:"step"`
	ActiveCategory string    `json:"active_category,omitempty"`
	SelectedSeats  []string  `json:"selected_seats"`
	MaxSeats       int       `json:"max_seats"`
	BookingID      string    `json:"booking_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// SessionStore persists booking sessions.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// redisSessionStore keeps sessions in redis with a sliding TTL.
type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

// Save writes the session and refreshes its TTL.
func (s *redisSessionStore) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.client.Set(ctx, constants.BuildSessionKey(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save booking session: %w", err)
	}
	return nil
}

// Get loads a session by id.
func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.client.Get(ctx, constants.BuildSessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking session: %w", err)
	}
	return &session, nil
}

// Delete removes a session.
func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, constants.BuildSessionKey(sessionID)).Err()
}
