package session

import (
	"context"
	"testing"
	"time"

	"github.com/Rohit6800/UniStay/internal/models"
	"github.com/Rohit6800/UniStay/internal/wishlist"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	store := NewRedisStore(client)

	s := &Session{
		ID:       "sid-1",
		User:     models.User{ID: "uid-1", Role: models.RoleStudent, Name: "Priya", Email: "priya@example.com"},
		Wishlist: wishlist.New("sbu-v1", "sbu-v3"),
	}
	require.NoError(t, store.Save(ctx, s, time.Hour))
	assert.True(t, mr.Exists("session:sid-1"))

	loaded, err := store.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, s.User, loaded.User)
	assert.Equal(t, []string{"sbu-v1", "sbu-v3"}, loaded.Wishlist.IDs())

	require.NoError(t, store.Delete(ctx, "sid-1"))
	_, err = store.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRedisStore_Expires(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	store := NewRedisStore(client)

	require.NoError(t, store.Save(ctx, &Session{ID: "sid-2", Wishlist: wishlist.New()}, time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx, "sid-2")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_WithRedisStore(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)
	m := NewManager(NewRedisStore(client), testSecret, time.Hour)

	s, token, err := m.Login(ctx, models.LoginRequest{Name: "Vikram", Email: "vikram@example.com", Role: models.RoleDealer})
	require.NoError(t, err)

	resolved, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, s.ID, resolved.ID)
	assert.True(t, resolved.IsDealer())
}

func TestRedisStore_UpdateKeepsOtherWritesAndTTL(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	m := NewManager(NewRedisStore(client), testSecret, time.Hour)

	_, token, err := m.Login(ctx, models.LoginRequest{Name: "Priya", Email: "priya@example.com", Role: models.RoleStudent})
	require.NoError(t, err)
	tabA, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	tabB, err := m.Resolve(ctx, token)
	require.NoError(t, err)

	mr.FastForward(10 * time.Minute)

	_, err = m.ToggleWishlist(ctx, tabA, "sbu-v1")
	require.NoError(t, err)
	saved, err := m.ToggleWishlist(ctx, tabB, "sbu-v2")
	require.NoError(t, err)
	assert.True(t, saved)

	resolved, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, []string{"sbu-v1", "sbu-v2"}, resolved.Wishlist.IDs())
	assert.Equal(t, 50*time.Minute, mr.TTL("session:"+tabA.ID))
}

func TestRedisStore_UpdateMissing(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewRedisStore(client)

	_, err := store.Update(context.Background(), "gone", func(*Session) {})
	assert.ErrorIs(t, err, ErrNoSession)
}
