// README: Intake dedupe backed by Redis.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// filedTTL keeps dedupe keys long enough to outlive the optimizer's feed
// window; candidates rotate out well within 7 days.
const filedTTL = 7 * 24 * time.Hour

// Dedupe remembers which candidate ids have already been filed so the intake
// does not create duplicate trips across ticks or restarts.
type Dedupe interface {
	MarkFiled(ctx context.Context, candidateID string) (bool, error)
}

type RedisDedupe struct {
	redis *redis.Client
}

func NewRedisDedupe(client *redis.Client) *RedisDedupe {
	return &RedisDedupe{redis: client}
}

// MarkFiled claims a candidate id. It returns true exactly once per id.
func (d *RedisDedupe) MarkFiled(ctx context.Context, candidateID string) (bool, error) {
	return d.redis.SetNX(ctx, filedKey(candidateID), "1", filedTTL).Result()
}

func filedKey(id string) string {
	return fmt.Sprintf("planner:candidate:%s:filed", id)
}
