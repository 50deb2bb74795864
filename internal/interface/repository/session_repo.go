package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RedisSessionRepository implements SessionRepository on a redis list
// per owner. Sessions expire after the configured TTL and are trimmed to
// the last maxTurns entries so history stays bounded.
type RedisSessionRepository struct {
	client   *redis.Client
	logger   logger.Logger
	ttl      time.Duration
	maxTurns int
}

// NewRedisSessionRepository creates a new redis session repository
func NewRedisSessionRepository(client *redis.Client, logger logger.Logger, ttl time.Duration, maxTurns int) repository.SessionRepository {
	return &RedisSessionRepository{
		client:   client,
		logger:   logger,
		ttl:      ttl,
		maxTurns: maxTurns,
	}
}

func sessionKey(waid string) string {
	return fmt.Sprintf("session:%s", waid)
}

// Load returns the owner's recorded turns, oldest first.
func (r *RedisSessionRepository) Load(ctx context.Context, waid string) ([]repository.SessionTurn, error) {
	raw, err := r.client.LRange(ctx, sessionKey(waid), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	turns := make([]repository.SessionTurn, 0, len(raw))
	for _, item := range raw {
		var turn repository.SessionTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			r.logger.Warn("Dropping unreadable session turn", "waid", waid, "error", err)
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Append records turns at the end of the owner's session, trims to the
// configured window and refreshes the TTL.
func (r *RedisSessionRepository) Append(ctx context.Context, waid string, turns ...repository.SessionTurn) error {
	if len(turns) == 0 {
		return nil
	}

	key := sessionKey(waid)
	values := make([]interface{}, 0, len(turns))
	for _, turn := range turns {
		data, err := json.Marshal(turn)
		if err != nil {
			return err
		}
		values = append(values, data)
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, int64(-r.maxTurns), -1)
	pipe.Expire(ctx, key, r.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Clear removes the owner's session.
func (r *RedisSessionRepository) Clear(ctx context.Context, waid string) error {
	return r.client.Del(ctx, sessionKey(waid)).Err()
}
