package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CongDon1207/Four-Connect/internal/domain"
	"github.com/CongDon1207/Four-Connect/internal/service/game"
)

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "connect4:session:abc", sessionKey("abc"))
}

func TestRecordCodec(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rec := game.Record{
		ID:       "abc",
		Settings: game.Settings{Mode: game.ModeAI, Level: 3, AIFirst: true},
		Game: domain.Snapshot{
			Moves:   []domain.SnapshotMove{{Column: 3, Player: domain.Player1}, {Column: 2, Player: domain.Player2}},
			Current: domain.Player1,
		},
		CreatedAt: created,
		UpdatedAt: created.Add(time.Minute),
	}

	data, err := encodeRecord(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"mode":"ai"`)

	decoded, err := decodeRecord(data)
	require.NoError(t, err)
	assert.Equal(t, rec, decoded)
}

func TestDecodeRecordRejectsGarbage(t *testing.T) {
	_, err := decodeRecord([]byte("{"))
	assert.Error(t, err)

	_, err = decodeRecord([]byte(`{"settings":{"mode":"human"}}`))
	assert.Error(t, err)
}

func TestConnectWithoutAddress(t *testing.T) {
	client, err := Connect(context.Background(), Options{})
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestSessionStoreReportsConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	store := NewSessionStore(client, time.Minute)
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, game.Record{ID: "abc"}))
	_, found, err := store.Load(ctx, "abc")
	assert.Error(t, err)
	assert.False(t, found)
	assert.Error(t, store.Delete(ctx, "abc"))
}
