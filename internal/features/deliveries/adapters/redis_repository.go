package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"delivery-tracker/internal/features/deliveries/domain"

	"github.com/redis/go-redis/v9"
)

// Key layout:
//
//	delivery:<id>            JSON record
//	rdc:<id>:deliveries      ZSET of delivery ids scored by createdAt (unix)
//	driver:<id>:deliveries   SET of delivery ids ever assigned to the driver
const (
	recordKeyPrefix   = "delivery:"
	rdcIndexPrefix    = "rdc:"
	driverIndexPrefix = "driver:"
	indexKeySuffix    = ":deliveries"
)

// RedisDeliveryStore implements ports.Store on Redis. Records live as JSON
// values with secondary indexes for the RDC time-range query and the
// per-driver listing. The service layer serializes writers per delivery id,
// so Put needs no conditional write.
type RedisDeliveryStore struct {
	client *redis.Client
}

// NewRedisDeliveryStore creates a store over an existing Redis client.
func NewRedisDeliveryStore(client *redis.Client) *RedisDeliveryStore {
	return &RedisDeliveryStore{client: client}
}

// Get returns the record for id, or domain.ErrNotFound.
func (s *RedisDeliveryStore) Get(ctx context.Context, id string) (*domain.Delivery, error) {
	data, err := s.client.Get(ctx, recordKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery %s: %w", id, err)
	}

	var rec domain.Delivery
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal delivery %s: %w", id, err)
	}
	return &rec, nil
}

// Put writes the record and maintains both indexes atomically.
func (s *RedisDeliveryStore) Put(ctx context.Context, d *domain.Delivery) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery %s: %w", d.ID, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, recordKeyPrefix+d.ID, data, 0)
		pipe.ZAdd(ctx, rdcIndexPrefix+d.RdcID+indexKeySuffix, redis.Z{
			Score:  float64(d.CreatedAt.Unix()),
			Member: d.ID,
		})
		if d.DriverID != "" {
			pipe.SAdd(ctx, driverIndexPrefix+d.DriverID+indexKeySuffix, d.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to put delivery %s: %w", d.ID, err)
	}
	return nil
}

// QueryByRdcAndRange returns records for the RDC created in [start, end],
// both ends inclusive.
func (s *RedisDeliveryStore) QueryByRdcAndRange(ctx context.Context, rdcID string, start, end time.Time) ([]*domain.Delivery, error) {
	ids, err := s.client.ZRangeByScore(ctx, rdcIndexPrefix+rdcID+indexKeySuffix, &redis.ZRangeBy{
		Min: strconv.FormatInt(start.Unix(), 10),
		Max: strconv.FormatInt(end.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query rdc %s index: %w", rdcID, err)
	}

	return s.fetchAll(ctx, ids)
}

// ActiveByDriver returns the driver's pending and in-transit records,
// newest first.
func (s *RedisDeliveryStore) ActiveByDriver(ctx context.Context, driverID string) ([]*domain.Delivery, error) {
	ids, err := s.client.SMembers(ctx, driverIndexPrefix+driverID+indexKeySuffix).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query driver %s index: %w", driverID, err)
	}

	recs, err := s.fetchAll(ctx, ids)
	if err != nil {
		return nil, err
	}

	active := recs[:0]
	for _, rec := range recs {
		if rec.Status.Active() {
			active = append(active, rec)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	return active, nil
}

// Ping checks if Redis is reachable.
func (s *RedisDeliveryStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// fetchAll loads the named records, skipping ids whose record has vanished
// (index entries are not expired with their records).
func (s *RedisDeliveryStore) fetchAll(ctx context.Context, ids []string) ([]*domain.Delivery, error) {
	recs := make([]*domain.Delivery, 0, len(ids))
	for _, id := range ids {
		rec, err := s.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
