package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linkiq/linkiq/services/profile/internal/model"
)

const ttl = time.Hour

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// ProfileCache keeps profiles by user id and a username index pointing at
// the user id.
type ProfileCache struct{ R *redis.Client }

func key(id string) string { return "profile:" + id }

func usernameKey(name string) string { return "profile:username:" + name }

func (c *ProfileCache) Get(ctx context.Context, id string) (*model.Profile, error) {
	b, err := c.R.Get(ctx, key(id)).Bytes()
	if err != nil {
		return nil, err
	}
	var p model.Profile
	return &p, json.Unmarshal(b, &p)
}

func (c *ProfileCache) GetByUsername(ctx context.Context, username string) (*model.Profile, error) {
	id, err := c.R.Get(ctx, usernameKey(username)).Result()
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, id)
}

func (c *ProfileCache) Set(ctx context.Context, p *model.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = c.R.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key(p.UserID), b, ttl)
		pipe.Set(ctx, usernameKey(p.Username), p.UserID, ttl)
		return nil
	})
	return err
}

// Delete drops the profile and, when known, its old username index entry.
func (c *ProfileCache) Delete(ctx context.Context, id, username string) error {
	keys := []string{key(id)}
	if username != "" {
		keys = append(keys, usernameKey(username))
	}
	return c.R.Del(ctx, keys...).Err()
}
