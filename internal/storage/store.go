// Package storage is the namespaced draft store. Every entry is wrapped in
// an Envelope; loads validate expiry and integrity and fail closed to
// "no data" rather than ever returning a stale or corrupt value.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/souravsharma24/onboarding-form-sub000/internal/common/errors"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/logger"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/metrics"
)

// Options controls how one entry is written and interpreted on read.
type Options struct {
	Version  string
	TTL      time.Duration
	Checksum bool
}

// Store is the persistence contract handed to the rest of the service.
type Store interface {
	Save(ctx context.Context, key string, v interface{}, opts Options) error
	Load(ctx context.Context, key string, dst interface{}, opts Options) (bool, error)
	Remove(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// RedisStore implements Store on a Redis backend with a fixed key prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger logger.Logger
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, prefix string, log logger.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		logger: log.WithFields(map[string]interface{}{"component": "storage"}),
		now:    time.Now,
	}
}

// WithClock overrides the store's clock. Tests use this to simulate expiry.
func (s *RedisStore) WithClock(now func() time.Time) *RedisStore {
	s.now = now
	return s
}

func (s *RedisStore) physicalKey(key string) string {
	return s.prefix + key
}

// Save wraps v in an Envelope stamped with the current time and writes it.
// The TTL is also applied physically so abandoned drafts age out of Redis.
func (s *RedisStore) Save(ctx context.Context, key string, v interface{}, opts Options) error {
	payload, err := json.Marshal(v)
	if err != nil {
		metrics.StorageOperations.WithLabelValues("save", "error").Inc()
		return err
	}

	env := Envelope{
		Data:      payload,
		Timestamp: s.now().UTC(),
		Version:   opts.Version,
	}
	if opts.Checksum {
		env.Checksum = checksum(payload)
	}

	raw, err := json.Marshal(env)
	if err != nil {
		metrics.StorageOperations.WithLabelValues("save", "error").Inc()
		return err
	}

	if err := s.client.Set(ctx, s.physicalKey(key), raw, opts.TTL).Err(); err != nil {
		metrics.StorageOperations.WithLabelValues("save", "error").Inc()
		s.logger.WithError(err).Error("failed to persist entry", map[string]interface{}{"key": key})
		return apperrors.NewStorageUnavailableError(err)
	}

	metrics.StorageOperations.WithLabelValues("save", "ok").Inc()
	return nil
}

// Load reads an entry into dst and reports whether it was found. Expired,
// tampered or undecodable entries are deleted and reported as absent; Redis
// transport failures are logged and also reported as absent, never raised.
func (s *RedisStore) Load(ctx context.Context, key string, dst interface{}, opts Options) (bool, error) {
	raw, err := s.client.Get(ctx, s.physicalKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			metrics.StorageOperations.WithLabelValues("load", "error").Inc()
			s.logger.WithError(err).Error("failed to read entry", map[string]interface{}{"key": key})
		}
		return false, nil
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.discard(ctx, key, "undecodable", err)
		return false, nil
	}

	if env.Checksum != "" && env.Checksum != checksum(env.Data) {
		s.discard(ctx, key, "corrupt", nil)
		return false, nil
	}

	if env.Expired(s.now().UTC(), opts.TTL) {
		s.discard(ctx, key, "expired", nil)
		return false, nil
	}

	if err := json.Unmarshal(env.Data, dst); err != nil {
		s.discard(ctx, key, "undecodable", err)
		return false, nil
	}

	metrics.StorageOperations.WithLabelValues("load", "ok").Inc()
	return true, nil
}

// Remove deletes an entry.
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.physicalKey(key)).Err(); err != nil {
		metrics.StorageOperations.WithLabelValues("remove", "error").Inc()
		s.logger.WithError(err).Error("failed to remove entry", map[string]interface{}{"key": key})
		return err
	}
	metrics.StorageOperations.WithLabelValues("remove", "ok").Inc()
	return nil
}

// Exists reports whether a physical entry is present. It does not run the
// envelope checks; a subsequent Load may still discard the entry.
func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.physicalKey(key)).Result()
	if err != nil {
		s.logger.WithError(err).Error("failed to check entry", map[string]interface{}{"key": key})
		return false, nil
	}
	return n > 0, nil
}

// discard drops an entry that failed a load-path check.
func (s *RedisStore) discard(ctx context.Context, key, reason string, cause error) {
	fields := map[string]interface{}{"key": key, "reason": reason}
	if cause != nil {
		fields["error"] = cause.Error()
	}
	s.logger.Warn("discarding stored entry", fields)

	metrics.StorageDiscarded.WithLabelValues(reason).Inc()
	metrics.StorageOperations.WithLabelValues("load", reason).Inc()

	if err := s.client.Del(ctx, s.physicalKey(key)).Err(); err != nil {
		s.logger.WithError(err).Error("failed to delete discarded entry", map[string]interface{}{"key": key})
	}
}
