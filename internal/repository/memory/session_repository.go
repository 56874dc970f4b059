package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-recorddesk-be/pkg/store"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// SessionRepository keeps conversation sessions in Redis so multiple
// instances see the same state. When Redis is unreachable it degrades to a
// process-local cache with the same TTL, trading durability for liveness.
type SessionRepository struct {
	rdb   *redis.Client
	local *gocache.Cache
	ttl   time.Duration
}

func NewSessionRepository(rdb *redis.Client, ttlMinutes int) *SessionRepository {
	ttl := time.Duration(ttlMinutes) * time.Minute
	return &SessionRepository{
		rdb:   rdb,
		local: gocache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Get returns (nil, nil) when the session does not exist or has expired.
func (r *SessionRepository) Get(ctx context.Context, id string) (*store.Session, error) {
	if r.rdb != nil {
		data, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
		if err == nil {
			var sess store.Session
			if uerr := json.Unmarshal(data, &sess); uerr != nil {
				return nil, fmt.Errorf("corrupt session %s: %w", id, uerr)
			}
			return &sess, nil
		}
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		// Redis down: fall through to the local cache
	}

	if x, found := r.local.Get(id); found {
		return x.(*store.Session), nil
	}
	return nil, nil
}

func (r *SessionRepository) Save(ctx context.Context, sess *store.Session) error {
	if r.rdb != nil {
		data, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("marshal session %s: %w", sess.ID, err)
		}
		if err := r.rdb.Set(ctx, sessionKey(sess.ID), data, r.ttl).Err(); err == nil {
			return nil
		}
	}

	r.local.Set(sess.ID, sess, gocache.DefaultExpiration)
	return nil
}

// Delete drops a session explicitly (used when a conversation resolves).
func (r *SessionRepository) Delete(ctx context.Context, id string) {
	if r.rdb != nil {
		_ = r.rdb.Del(ctx, sessionKey(id)).Err()
	}
	r.local.Delete(id)
}
