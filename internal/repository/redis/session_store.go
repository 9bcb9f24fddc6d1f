package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/CongDon1207/Four-Connect/internal/service/game"
)

const sessionKeyPrefix = "connect4:session:"

// SessionStore keeps session records as JSON strings that expire after ttl
// without a write.
type SessionStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewSessionStore(client redis.Cmdable, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (s *SessionStore) Save(ctx context.Context, rec game.Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, sessionKey(rec.ID), data, s.ttl).Err(); err != nil {
		return errors.Wrapf(err, "save session %s", rec.ID)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context, id string) (game.Record, bool, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return game.Record{}, false, nil
	}
	if err != nil {
		return game.Record{}, false, errors.Wrapf(err, "load session %s", id)
	}

	rec, err := decodeRecord(data)
	if err != nil {
		return game.Record{}, false, err
	}
	return rec, true, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return errors.Wrapf(err, "delete session %s", id)
	}
	return nil
}

func encodeRecord(rec game.Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrap(err, "encode session record")
	}
	return data, nil
}

func decodeRecord(data []byte) (game.Record, error) {
	var rec game.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return game.Record{}, errors.Wrap(err, "decode session record")
	}
	if rec.ID == "" {
		return game.Record{}, errors.New("decode session record: missing id")
	}
	return rec, nil
}
