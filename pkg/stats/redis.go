package stats

import (
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"

	"github.com/hopebridge/hopebridge/pkg/model"
)

const totalKey = "stats/total"

// RedisStats implement stats Redis backend
// Inside docker can be connected as:
//
//	docker exec -it redis redis-cli
//
// View this month's counters:
//
//	127.0.0.1:6379> hgetall stats/2026/10
//
// All time counters:
//
//	127.0.0.1:6379> hgetall stats/total
type RedisStats struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStats(redisURL string) (*RedisStats, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid redis url")
	}

	client := redis.NewClient(opts)
	if err := client.Ping().Err(); err != nil {
		return nil, errors.Wrap(err, "failed to ping redis")
	}

	return &RedisStats{
		client: client,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// Inc adds amount to a metric and bumps its count. A negative amount reverses an earlier increment.
func (r *RedisStats) Inc(metric string, currency model.Currency, amount int64) error {
	key := r.makeKey(r.now())

	count := int64(1)
	if amount < 0 {
		count = -1
	}

	_, err := r.client.TxPipelined(func(p redis.Pipeliner) error {
		for _, k := range []string{key, totalKey} {
			p.HIncrBy(k, field(metric, currency, fieldCount), count)
			p.HIncrBy(k, field(metric, currency, fieldAmount), amount)
		}
		return nil
	})

	return err
}

func (r *RedisStats) Totals() (*Report, error) {
	now := r.now()

	month, err := r.client.HGetAll(r.makeKey(now)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to query monthly stats")
	}

	total, err := r.client.HGetAll(totalKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to query total stats")
	}

	return &Report{
		Period:    now.Format("2006-01"),
		ThisMonth: parseTotals(month),
		AllTime:   parseTotals(total),
	}, nil
}

func (r *RedisStats) makeKey(now time.Time) string {
	return fmt.Sprintf("stats/%d/%d", now.Year(), now.Month())
}

func (r *RedisStats) Close() error {
	return r.client.Close()
}
