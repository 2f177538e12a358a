package qstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/seeprybyrun/burlap/types"
)

// RedisQSource reads one agent's Q-values from a redis instance, so a table
// learned by another process can back decisions in this one. Missing keys
// and read failures fall back to the default value, matching the
// uninitialized entries of an in-memory table.
type RedisQSource struct {
	client   *redis.Client
	agent    string
	defaultQ float64
}

var _ types.QSource = &RedisQSource{}

func NewRedisQSource(addr, agent string, defaultQ float64) *RedisQSource {
	return &RedisQSource{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		agent:    agent,
		defaultQ: defaultQ,
	}
}

// Key returns the redis key a (state, joint action) pair is stored under.
func (r *RedisQSource) Key(s types.State, ja *types.JointAction) string {
	return fmt.Sprintf("q:%s:%s:%s", r.agent, s.Hash(), ja.Hash())
}

func (r *RedisQSource) QValue(s types.State, ja *types.JointAction) float64 {
	val, err := r.client.Get(context.Background(), r.Key(s, ja)).Float64()
	if err != nil {
		return r.defaultQ
	}
	return val
}

func (r *RedisQSource) Close() error {
	return r.client.Close()
}
