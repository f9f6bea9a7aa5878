package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"afisha/internal/models"
)

const sessionKeyPrefix = "session:"

// SessionCache is a read-through cache in front of the sessions table, so a
// page view does not cost a postgres round trip per request.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{client: client, ttl: ttl}
}

func (c *SessionCache) Get(ctx context.Context, id string) (models.Session, bool) {
	payload, err := c.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		return models.Session{}, false
	}

	var session models.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return models.Session{}, false
	}
	return session, true
}

func (c *SessionCache) Set(ctx context.Context, session models.Session) {
	payload, err := json.Marshal(session)
	if err != nil {
		return
	}

	ttl := c.ttl
	if remaining := time.Until(session.ExpiresAt); remaining > 0 && remaining < ttl {
		ttl = remaining
	}
	c.client.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl)
}

func (c *SessionCache) Delete(ctx context.Context, id string) {
	c.client.Del(ctx, sessionKeyPrefix+id)
}
