package drafts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flyviet/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// Store persists booking drafts for the life of a shopping session
type Store interface {
	Create(ctx context.Context, draft *Draft) error
	Get(ctx context.Context, token string) (*Draft, error)
	// Update performs a compare-and-swap on the draft's version. The caller
	// passes the draft as read; on success the stored and in-memory versions
	// are bumped, on mismatch ErrVersionConflict is returned.
	Update(ctx context.Context, draft *Draft) error
	Delete(ctx context.Context, token string) error
}

// Lua script for atomic draft creation - the token must not be in use
const luaDraftCreate = `
-- KEYS[1] = draft key
-- ARGV[1] = draft JSON
-- ARGV[2] = ttl_seconds

if redis.call("EXISTS", KEYS[1]) == 1 then
    return 0
end

redis.call("HSET", KEYS[1], "data", ARGV[1], "version", 1)
redis.call("EXPIRE", KEYS[1], tonumber(ARGV[2]))
return 1
`

// Lua script for optimistic-versioned update - rejects stale writers
const luaDraftUpdate = `
-- KEYS[1] = draft key
-- ARGV[1] = expected version
-- ARGV[2] = draft JSON
-- ARGV[3] = ttl_seconds

local current = redis.call("HGET", KEYS[1], "version")
if current == false then
    return -1
end
if tonumber(current) ~= tonumber(ARGV[1]) then
    return 0
end

redis.call("HSET", KEYS[1], "data", ARGV[2], "version", tonumber(current) + 1)
redis.call("EXPIRE", KEYS[1], tonumber(ARGV[3]))
return tonumber(current) + 1
`

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Create(ctx context.Context, draft *Draft) error {
	draft.Version = 1

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	key := constants.BuildDraftKey(draft.Token)
	result, err := s.client.Eval(ctx, luaDraftCreate, []string{key},
		string(data), int(s.ttl.Seconds())).Int64()
	if err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}
	if result == 0 {
		return ErrDraftExists
	}

	return nil
}

func (s *redisStore) Get(ctx context.Context, token string) (*Draft, error) {
	key := constants.BuildDraftKey(token)

	values, err := s.client.HMGet(ctx, key, "data", "version").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	if values[0] == nil || values[1] == nil {
		return nil, ErrDraftNotFound
	}

	var draft Draft
	if err := json.Unmarshal([]byte(values[0].(string)), &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	// The hash field is authoritative for the version; the JSON copy can lag
	// one write behind it
	var version int64
	if _, err := fmt.Sscanf(values[1].(string), "%d", &version); err == nil {
		draft.Version = version
	}

	return &draft, nil
}

func (s *redisStore) Update(ctx context.Context, draft *Draft) error {
	expected := draft.Version
	draft.UpdatedAt = time.Now()

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	key := constants.BuildDraftKey(draft.Token)
	result, err := s.client.Eval(ctx, luaDraftUpdate, []string{key},
		expected, string(data), int(s.ttl.Seconds())).Int64()
	if err != nil {
		return fmt.Errorf("failed to update draft: %w", err)
	}

	switch result {
	case -1:
		return ErrDraftNotFound
	case 0:
		return ErrVersionConflict
	default:
		draft.Version = result
		return nil
	}
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	key := constants.BuildDraftKey(token)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
