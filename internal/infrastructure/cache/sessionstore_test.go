package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/docforge/internal/domain/document"
	vo "github.com/orris-inc/docforge/internal/domain/document/valueobjects"
	"github.com/orris-inc/docforge/internal/shared/config"
	"github.com/orris-inc/docforge/internal/shared/constants"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func testSession(id string) *document.ExportSession {
	return document.ReconstructExportSession(
		id,
		7,
		"tpl_abc",
		"Notice",
		"<h1>{{title}}</h1><p>Dear {{name}},</p>",
		[]document.ExportLine{
			{Name: "name", Label: "Name", Type: vo.VariableTypeShortText, Required: true, Value: "Jane"},
			{Name: "tone", Label: "Tone", Type: vo.VariableTypeSingleSelect, SelectOptions: []string{"formal", "casual"}},
		},
		map[string]string{"title": "Notice"},
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	)
}

func assertSameSession(t *testing.T, want, got *document.ExportSession) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want.ID(), got.ID())
	assert.Equal(t, want.TemplateID(), got.TemplateID())
	assert.Equal(t, want.TemplateSID(), got.TemplateSID())
	assert.Equal(t, want.TemplateName(), got.TemplateName())
	assert.Equal(t, want.Body(), got.Body())
	assert.Equal(t, want.Lines(), got.Lines())
	assert.Equal(t, want.ExtraValues(), got.ExtraValues())
	assert.True(t, want.CreatedAt().Equal(got.CreatedAt()))
}

func TestRedisSessionStore_SaveGetDelete(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisSessionStore(client, 10*time.Minute, logger.Nop())
	ctx := context.Background()

	session := testSession("sess-1")
	require.NoError(t, store.Save(ctx, session))
	assert.True(t, mr.Exists(constants.RedisPrefixExportSession+"sess-1"))
	assert.Equal(t, 10*time.Minute, mr.TTL(constants.RedisPrefixExportSession+"sess-1"))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assertSameSession(t, session, got)

	require.NoError(t, store.Delete(ctx, "sess-1"))
	got, err = store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSessionStore_Expiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisSessionStore(client, time.Minute, logger.Nop())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("sess-2")))
	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "sess-2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSessionStore_SaveOverwritesValues(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewRedisSessionStore(client, 0, logger.Nop())
	ctx := context.Background()

	session := testSession("sess-3")
	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, session.SetLineValue("tone", "formal"))
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, "sess-3")
	require.NoError(t, err)
	line, err := got.Line("tone")
	require.NoError(t, err)
	assert.Equal(t, "formal", line.Value)
}

func TestRedisSessionStore_CorruptPayload(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisSessionStore(client, 0, logger.Nop())

	require.NoError(t, mr.Set(constants.RedisPrefixExportSession+"bad", "{not json"))
	_, err := store.Get(context.Background(), "bad")
	assert.Error(t, err)
}

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	session := testSession("sess-1")
	require.NoError(t, store.Save(ctx, session))

	// Changes after Save stay local until the next Save.
	require.NoError(t, session.SetLineValue("name", "Bob"))
	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	line, _ := got.Line("name")
	assert.Equal(t, "Jane", line.Value)

	now = now.Add(2 * time.Minute)
	got, err = store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.Delete(ctx, "sess-1"))
	got, err = store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemorySessionStore_PurgeExpired(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("old")))
	now = now.Add(45 * time.Second)
	require.NoError(t, store.Save(ctx, testSession("new")))
	now = now.Add(30 * time.Second)

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(ctx, "new")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestMemorySessionStore_RejectsEmptyID(t *testing.T) {
	store := NewMemorySessionStore(0)
	assert.Error(t, store.Save(context.Background(), nil))
	assert.Error(t, store.Save(context.Background(), testSession("")))
}

func TestNewSessionStore(t *testing.T) {
	_, client := setupTestRedis(t)

	s, err := NewSessionStore(&config.ExportConfig{SessionStore: config.SessionStoreMemory}, nil, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &MemorySessionStore{}, s)

	s, err = NewSessionStore(&config.ExportConfig{SessionStore: config.SessionStoreRedis}, client, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &RedisSessionStore{}, s)

	_, err = NewSessionStore(&config.ExportConfig{SessionStore: config.SessionStoreRedis}, nil, logger.Nop())
	assert.Error(t, err)

	_, err = NewSessionStore(&config.ExportConfig{SessionStore: "etcd"}, nil, logger.Nop())
	assert.Error(t, err)
}
