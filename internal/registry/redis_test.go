// internal/registry/redis_test.go
package registry

import (
	"context"
	"testing"

	"activities-service/internal/common/errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T, opts Options) *RedisStore {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewRedisStore(client, opts)
	require.NoError(t, store.Seed(context.Background(), testSeed()))
	return store
}

func TestRedisStore_List_ContainsSeededActivities(t *testing.T) {
	store := setupRedisStore(t, Options{})

	reg, err := store.List(context.Background())
	require.NoError(t, err)

	assert.Len(t, reg, 3)
	chess, ok := reg["Chess Club"]
	require.True(t, ok)
	assert.Equal(t, "Fridays, 3:30 PM - 5:00 PM", chess.Schedule)
	assert.Equal(t, 12, chess.MaxParticipants)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, chess.Participants)

	// Empty rosters decode as empty slices, never nil.
	debate, ok := reg["Debate Club"]
	require.True(t, ok)
	assert.NotNil(t, debate.Participants)
	assert.Empty(t, debate.Participants)
}

func TestRedisStore_Seed_DoesNotOverwriteExistingRosters(t *testing.T) {
	store := setupRedisStore(t, Options{})
	ctx := context.Background()

	require.NoError(t, store.Signup(ctx, "Chess Club", "new@x.edu"))

	// Re-seeding simulates a process restart.
	require.NoError(t, store.Seed(ctx, testSeed()))

	act, err := store.Get(ctx, "Chess Club")
	require.NoError(t, err)
	assert.Contains(t, act.Participants, "new@x.edu")
}

func TestRedisStore_Signup_AppendsPreservingOrder(t *testing.T) {
	store := setupRedisStore(t, Options{})
	ctx := context.Background()

	require.NoError(t, store.Signup(ctx, "Chess Club", "new@x.edu"))

	act, err := store.Get(ctx, "Chess Club")
	require.NoError(t, err)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu", "new@x.edu"}, act.Participants)
}

func TestRedisStore_Signup_DuplicateRejected(t *testing.T) {
	store := setupRedisStore(t, Options{})
	ctx := context.Background()

	err := store.Signup(ctx, "Chess Club", "michael@mergington.edu")
	assertErrorCode(t, err, errors.ErrCodeAlreadyRegistered)

	act, err := store.Get(ctx, "Chess Club")
	require.NoError(t, err)
	assert.Len(t, act.Participants, 2)
}

func TestRedisStore_Signup_UnknownActivity(t *testing.T) {
	store := setupRedisStore(t, Options{})

	err := store.Signup(context.Background(), "Nonexistent Activity", "student@mergington.edu")
	assertErrorCode(t, err, errors.ErrCodeActivityNotFound)
}

func TestRedisStore_Signup_CapacityEnforcedWhenOptedIn(t *testing.T) {
	store := setupRedisStore(t, Options{EnforceCapacity: true})
	ctx := context.Background()

	require.NoError(t, store.Signup(ctx, "Art Studio", "a@mergington.edu"))

	err := store.Signup(ctx, "Art Studio", "b@mergington.edu")
	assertErrorCode(t, err, errors.ErrCodeActivityFull)

	// A duplicate beats the capacity check even when the roster is full.
	err = store.Signup(ctx, "Art Studio", "amelia@mergington.edu")
	assertErrorCode(t, err, errors.ErrCodeAlreadyRegistered)
}

func TestRedisStore_Unregister_RoundTrip(t *testing.T) {
	store := setupRedisStore(t, Options{})
	ctx := context.Background()

	before, err := store.Get(ctx, "Art Studio")
	require.NoError(t, err)

	require.NoError(t, store.Signup(ctx, "Art Studio", "transient@mergington.edu"))
	require.NoError(t, store.Unregister(ctx, "Art Studio", "transient@mergington.edu"))

	after, err := store.Get(ctx, "Art Studio")
	require.NoError(t, err)
	assert.Equal(t, before.Participants, after.Participants)
}

func TestRedisStore_Unregister_NotRegistered(t *testing.T) {
	store := setupRedisStore(t, Options{})

	err := store.Unregister(context.Background(), "Art Studio", "notsignup@mergington.edu")
	assertErrorCode(t, err, errors.ErrCodeNotRegistered)
}

func TestRedisStore_Unregister_UnknownActivity(t *testing.T) {
	store := setupRedisStore(t, Options{})

	err := store.Unregister(context.Background(), "Nonexistent Activity", "student@mergington.edu")
	assertErrorCode(t, err, errors.ErrCodeActivityNotFound)
}
