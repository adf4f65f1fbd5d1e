// internal/registry/redis.go
package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"activities-service/internal/common/errors"
	"activities-service/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	activityKeyPrefix = "activity:"
	catalogKey        = "activities:catalog"

	// txRetries bounds optimistic-lock retries when two requests race on
	// the same activity.
	txRetries = 5
)

// RedisStore keeps each activity as a JSON document under activity:<name>
// and the catalog of names in a set. Mutations run inside a WATCH
// transaction on the activity key, so concurrent signups to the same
// activity cannot lose updates.
type RedisStore struct {
	client *redis.Client
	opts   Options
}

func NewRedisStore(client *redis.Client, opts Options) *RedisStore {
	return &RedisStore{client: client, opts: opts}
}

// Seed writes the catalog if it is not already present. Existing rosters
// are never overwritten, so restarts keep accumulated signups.
func (s *RedisStore) Seed(ctx context.Context, seed models.Registry) error {
	for name, act := range seed {
		data, err := json.Marshal(act)
		if err != nil {
			return fmt.Errorf("marshal activity %q: %w", name, err)
		}
		set, err := s.client.SetNX(ctx, activityKeyPrefix+name, data, 0).Result()
		if err != nil {
			return errors.NewStoreUnavailableError(fmt.Sprintf("seed %q: %v", name, err))
		}
		if set {
			if err := s.client.SAdd(ctx, catalogKey, name).Err(); err != nil {
				return errors.NewStoreUnavailableError(fmt.Sprintf("catalog add %q: %v", name, err))
			}
		}
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) (models.Registry, error) {
	names, err := s.client.SMembers(ctx, catalogKey).Result()
	if err != nil {
		return nil, errors.NewStoreUnavailableError(fmt.Sprintf("catalog read: %v", err))
	}

	out := make(models.Registry, len(names))
	for _, name := range names {
		act, err := s.Get(ctx, name)
		if err != nil {
			// Catalog entry without a document means a partial seed; skip
			// rather than fail the whole listing.
			if stdErr := errors.AsStandard(err); stdErr.Code == errors.ErrCodeActivityNotFound {
				continue
			}
			return nil, err
		}
		out[name] = act
	}
	return out, nil
}

func (s *RedisStore) Get(ctx context.Context, activity string) (models.Activity, error) {
	data, err := s.client.Get(ctx, activityKeyPrefix+activity).Bytes()
	if err == redis.Nil {
		return models.Activity{}, errors.NewActivityNotFoundError(activity)
	}
	if err != nil {
		return models.Activity{}, errors.NewStoreUnavailableError(fmt.Sprintf("get %q: %v", activity, err))
	}

	var act models.Activity
	if err := json.Unmarshal(data, &act); err != nil {
		return models.Activity{}, errors.NewStoreUnavailableError(fmt.Sprintf("decode %q: %v", activity, err))
	}
	if act.Participants == nil {
		act.Participants = []string{}
	}
	return act, nil
}

func (s *RedisStore) Signup(ctx context.Context, activity, email string) error {
	return s.mutate(ctx, activity, func(act *models.Activity) error {
		if act.HasParticipant(email) {
			return errors.NewAlreadyRegisteredError(activity, email)
		}
		if s.opts.EnforceCapacity && act.IsFull() {
			return errors.NewActivityFullError(activity, act.MaxParticipants)
		}
		act.Participants = append(act.Participants, email)
		return nil
	})
}

func (s *RedisStore) Unregister(ctx context.Context, activity, email string) error {
	return s.mutate(ctx, activity, func(act *models.Activity) error {
		for i, p := range act.Participants {
			if p == email {
				act.Participants = append(act.Participants[:i], act.Participants[i+1:]...)
				return nil
			}
		}
		return errors.NewNotRegisteredError(activity, email)
	})
}

// mutate runs apply against the activity document inside a WATCH
// transaction, retrying on write conflicts.
func (s *RedisStore) mutate(ctx context.Context, activity string, apply func(*models.Activity) error) error {
	key := activityKeyPrefix + activity

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return errors.NewActivityNotFoundError(activity)
		}
		if err != nil {
			return errors.NewStoreUnavailableError(fmt.Sprintf("get %q: %v", activity, err))
		}

		var act models.Activity
		if err := json.Unmarshal(data, &act); err != nil {
			return errors.NewStoreUnavailableError(fmt.Sprintf("decode %q: %v", activity, err))
		}
		if act.Participants == nil {
			act.Participants = []string{}
		}

		if err := apply(&act); err != nil {
			return err
		}

		updated, err := json.Marshal(act)
		if err != nil {
			return fmt.Errorf("marshal activity %q: %w", activity, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}

	for i := 0; i < txRetries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if err == redis.TxFailedErr {
			continue
		}
		return err
	}
	return errors.NewStoreUnavailableError(fmt.Sprintf("write conflict on %q", activity))
}
