package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"socialite/internal/config"
	"socialite/internal/core/scheduledpost"
)

const queueKey = "scheduled:posts"

// SchedulerRepositoryRedis keeps deferred post payloads in a ZSET scored by
// their run-at unix time. ZRem is the claim: whichever worker removes the
// member owns it, so two workers never materialize the same payload.
type SchedulerRepositoryRedis struct {
	Client *redis.Client
}

func NewSchedulerRepositoryRedis(client *redis.Client) *SchedulerRepositoryRedis {
	return &SchedulerRepositoryRedis{
		Client: client,
	}
}

func (r *SchedulerRepositoryRedis) Schedule(ctx context.Context, runAt time.Time, payload *scheduledpost.Payload) error {
	raw, err := payload.Encode()
	if err != nil {
		return err
	}

	z := &redis.Z{
		Score:  float64(runAt.Unix()),
		Member: raw,
	}
	return r.Client.ZAdd(ctx, queueKey, z).Err()
}

func (r *SchedulerRepositoryRedis) ClaimDue(ctx context.Context, now time.Time, limit int64) ([]*scheduledpost.Payload, error) {
	members, err := r.Client.ZRangeByScore(ctx, queueKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.Unix(), 10),
		Count: limit,
	}).Result()
	if err != nil {
		return nil, err
	}

	var due []*scheduledpost.Payload
	for _, m := range members {
		removed, err := r.Client.ZRem(ctx, queueKey, m).Result()
		if err != nil {
			return due, err
		}
		if removed == 0 {
			// Another worker claimed it first.
			continue
		}

		p, err := scheduledpost.Decode(m)
		if err != nil {
			// Poisoned member; retrying cannot help, so drop it.
			config.Logger.Error("❌ Dropping undecodable scheduled-post payload:", zap.Error(err))
			continue
		}
		due = append(due, p)
	}
	return due, nil
}
