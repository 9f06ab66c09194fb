package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "agent:sess:"

// Session is the ephemeral per-conversation state: ordered message
// history plus the authorization flag the gate maintains.
type Session struct {
	ID         string    `json:"id"`
	TenantID   uint      `json:"tenant_id"`
	Authorized bool      `json:"authorized"`
	BossName   string    `json:"boss_name,omitempty"`
	Messages   []Message `json:"messages"`
}

// SessionStore keeps sessions in Redis with a sliding TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(tenantID uint, id string) string {
	return fmt.Sprintf("%s%d:%s", sessionPrefix, tenantID, id)
}

// Get loads a session, returning a fresh one when none exists.
func (s *SessionStore) Get(ctx context.Context, tenantID uint, id string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(tenantID, id)).Result()
	if err == redis.Nil {
		return &Session{ID: id, TenantID: tenantID}, nil
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sess.TenantID, sess.ID), b, s.ttl).Err()
}

func (s *SessionStore) Clear(ctx context.Context, tenantID uint, id string) error {
	return s.client.Del(ctx, sessionKey(tenantID, id)).Err()
}
