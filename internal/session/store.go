package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

// ErrNotFound is returned when no session exists for the given ID.
var ErrNotFound = errors.New("session not found")

const keyPrefix = "session:"

// Session is the server-side payload established at login and cleared at
// logout.
type Session struct {
	UserID       int64       `json:"user_id"`
	Username     string      `json:"username"`
	Role         domain.Role `json:"role"`
	FirstName    string      `json:"first_name"`
	ProfileImage *string     `json:"profile_image"`
}

// Store persists sessions in Redis with a TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore builds a session store.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

// Create stores a new session and returns its ID.
func (s *Store) Create(ctx context.Context, sess Session) (string, error) {
	id := uuid.NewString()
	if err := s.write(ctx, id, sess); err != nil {
		return "", err
	}
	return id, nil
}

// Get loads the session for the given ID.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Update overwrites the session payload, refreshing its TTL.
func (s *Store) Update(ctx context.Context, id string, sess Session) error {
	return s.write(ctx, id, sess)
}

// Delete removes the session. Deleting a missing session is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}

func (s *Store) write(ctx context.Context, id string, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+id, raw, s.ttl).Err()
}
