package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lojachat/internal/model"
)

const (
	sessionTTL    = 30 * time.Minute
	sessionPrefix = "chat:session:"
)

// HistoryStore keeps the recent turns of a conversation.
type HistoryStore interface {
	Get(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	Append(ctx context.Context, sessionID string, msgs ...model.ChatMessage) error
}

// SessionStore keeps conversation history in Redis, capped at the last
// historyTurns messages.
type SessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func (s *SessionStore) key(sessionID string) string {
	return sessionPrefix + sessionID
}

func (s *SessionStore) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return sessionTTL
}

// Get returns the stored turns; an unknown session has no history.
func (s *SessionStore) Get(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	vals, err := s.Client.LRange(ctx, s.key(sessionID), 0, -1).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	msgs := make([]model.ChatMessage, 0, len(vals))
	for _, v := range vals {
		var m model.ChatMessage
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// Append pushes msgs, trims the list to the last historyTurns entries and
// refreshes the expiration in a single transaction.
func (s *SessionStore) Append(ctx context.Context, sessionID string, msgs ...model.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	vals := make([]any, 0, len(msgs))
	for _, m := range msgs {
		b, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode session %s: %w", sessionID, err)
		}
		vals = append(vals, b)
	}

	key := s.key(sessionID)
	_, err := s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, vals...)
		pipe.LTrim(ctx, key, -historyTurns, -1)
		pipe.Expire(ctx, key, s.ttl())
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis append: %w", err)
	}
	return nil
}
