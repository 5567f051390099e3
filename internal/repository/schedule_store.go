package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/cantouch/socialflow-backend/internal/domain"
	"github.com/cantouch/socialflow-backend/pkg/logger"
)

// ScheduleStore persists the schedule as one value under a fixed namespace
// key. Every mutation rewrites the whole collection; there are no partial
// or delta writes, and no versioning (a format change needs a new key).
type ScheduleStore interface {
	Load(ctx context.Context) ([]domain.ScheduledCampaign, error)
	Save(ctx context.Context, campaigns []domain.ScheduledCampaign) error
}

// RedisScheduleStore keeps the serialized schedule in a single Redis key
type RedisScheduleStore struct {
	client *redis.Client
	key    string
}

// NewRedisScheduleStore creates a store writing under the given namespace key
func NewRedisScheduleStore(client *redis.Client, key string) *RedisScheduleStore {
	return &RedisScheduleStore{client: client, key: key}
}

// Load reads and deserializes the whole schedule. A missing key is an empty
// schedule; a corrupted value is logged and also treated as empty rather
// than failing startup.
func (s *RedisScheduleStore) Load(ctx context.Context) ([]domain.ScheduledCampaign, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.ScheduledCampaign{}, nil
		}
		return nil, err
	}

	var campaigns []domain.ScheduledCampaign
	if err := json.Unmarshal(data, &campaigns); err != nil {
		logger.Warn("failed to parse persisted schedule under %s, starting empty: %v", s.key, err)
		return []domain.ScheduledCampaign{}, nil
	}
	return campaigns, nil
}

// Save serializes and writes the whole schedule, replacing the prior value
func (s *RedisScheduleStore) Save(ctx context.Context, campaigns []domain.ScheduledCampaign) error {
	data, err := json.Marshal(campaigns)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}

// MemoryScheduleStore is an in-process store with the same whole-value
// semantics, used in tests and when Redis is not configured.
type MemoryScheduleStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryScheduleStore creates an empty in-memory store
func NewMemoryScheduleStore() *MemoryScheduleStore {
	return &MemoryScheduleStore{}
}

// Seed replaces the raw stored value, mimicking a pre-existing (possibly
// corrupted) persisted payload.
func (s *MemoryScheduleStore) Seed(raw []byte) {
	s.mu.Lock()
	s.data = append([]byte(nil), raw...)
	s.mu.Unlock()
}

// Load deserializes the stored schedule with the same corruption handling
// as the Redis store.
func (s *MemoryScheduleStore) Load(_ context.Context) ([]domain.ScheduledCampaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.data) == 0 {
		return []domain.ScheduledCampaign{}, nil
	}
	var campaigns []domain.ScheduledCampaign
	if err := json.Unmarshal(s.data, &campaigns); err != nil {
		logger.Warn("failed to parse persisted schedule, starting empty: %v", err)
		return []domain.ScheduledCampaign{}, nil
	}
	return campaigns, nil
}

// Save serializes and stores the whole schedule
func (s *MemoryScheduleStore) Save(_ context.Context, campaigns []domain.ScheduledCampaign) error {
	data, err := json.Marshal(campaigns)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}
