// Package session owns the persisted login session: one JSON record per
// signed-in user, created at login, destroyed at logout, read by every
// protected screen.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Tawatchai-03/clinic-frontend/models"
)

const (
	// SessionPrefix is the current key prefix for stored sessions.
	SessionPrefix = "session:"
	// LegacySessionPrefix is the key prefix an earlier release used.
	// Records found under it are renamed to the current prefix once.
	LegacySessionPrefix = "auth:"

	// DefaultTTL is how long an idle session survives. Reads refresh it.
	DefaultTTL = 24 * time.Hour
)

// ErrNotFound is returned when no session exists for the given ID.
var ErrNotFound = errors.New("session not found")

// Store reads and writes sessions in Redis. Login and logout are the sole
// writers; everything else only reads.
type Store struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewStore returns a Store with the default TTL.
func NewStore(client *redis.Client) *Store {
	return &Store{Client: client, TTL: DefaultTTL}
}

// Save stores the session under the given session ID.
func (s *Store) Save(sessionID string, sess models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	ctx := context.Background()
	if err := s.Client.Set(ctx, SessionPrefix+sessionID, data, s.ttl()).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get retrieves the session for the given session ID, migrating a record
// stored under the legacy prefix if one exists. A successful read refreshes
// the TTL.
func (s *Store) Get(sessionID string) (*models.Session, error) {
	ctx := context.Background()

	data, err := s.Client.Get(ctx, SessionPrefix+sessionID).Result()
	if err == redis.Nil {
		data, err = s.migrateLegacy(ctx, sessionID)
	}
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	_ = s.Client.Expire(ctx, SessionPrefix+sessionID, s.ttl()).Err()
	return &sess, nil
}

// Clear removes the session. Clearing an absent session is not an error.
func (s *Store) Clear(sessionID string) error {
	ctx := context.Background()
	return s.Client.Del(ctx, SessionPrefix+sessionID).Err()
}

// migrateLegacy renames a legacy-prefixed record to the current prefix and
// returns its payload. Returns redis.Nil when no legacy record exists.
func (s *Store) migrateLegacy(ctx context.Context, sessionID string) (string, error) {
	data, err := s.Client.Get(ctx, LegacySessionPrefix+sessionID).Result()
	if err != nil {
		return "", err
	}
	if err := s.Client.Set(ctx, SessionPrefix+sessionID, data, s.ttl()).Err(); err != nil {
		return "", err
	}
	_ = s.Client.Del(ctx, LegacySessionPrefix+sessionID).Err()
	return data, nil
}

func (s *Store) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultTTL
}
