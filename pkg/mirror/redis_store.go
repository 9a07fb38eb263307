package mirror

import (
	"context"
	"encoding/json"
	"log"
	"sort"

	"github.com/redis/go-redis/v9"
)

// ChangeEvent is published on the namespace channel after every write so
// the out-of-process reader can refresh its cached view.
type ChangeEvent struct {
	Type string `json:"type"`
	Id   string `json:"id,omitempty"`
}

const (
	ChangeUpsert = "UPSERT"
	ChangeRemove = "REMOVE"
	ChangeSync   = "SYNC"
	ChangeSelect = "SELECT"
)

// RedisStore keeps the mirror in a Redis namespace separate from the
// primary note store: a hash for the id->content map, a string key for
// the selected pointer, and a pub/sub channel for change notifications.
type RedisStore struct {
	rdb       *redis.Client
	namespace string
}

func NewRedisStore(rdb *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "widget"
	}
	return &RedisStore{rdb: rdb, namespace: namespace}
}

func (s *RedisStore) notesKey() string    { return s.namespace + ":notes" }
func (s *RedisStore) selectedKey() string { return s.namespace + ":selected" }

// Channel is the pub/sub channel carrying ChangeEvent payloads.
func (s *RedisStore) Channel() string { return s.namespace + ":events" }

func (s *RedisStore) Upsert(ctx context.Context, id, content string) error {
	if err := s.rdb.HSet(ctx, s.notesKey(), id, content).Err(); err != nil {
		return err
	}
	s.notify(ctx, ChangeUpsert, id)
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, id string) error {
	if err := s.rdb.HDel(ctx, s.notesKey(), id).Err(); err != nil {
		return err
	}
	s.notify(ctx, ChangeRemove, id)
	return nil
}

func (s *RedisStore) SetAll(ctx context.Context, entries []Entry) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, s.notesKey())
	if len(entries) > 0 {
		pairs := make([]interface{}, 0, len(entries)*2)
		for _, e := range entries {
			pairs = append(pairs, e.Id, e.Content)
		}
		pipe.HSet(ctx, s.notesKey(), pairs...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	s.notify(ctx, ChangeSync, "")
	return nil
}

func (s *RedisStore) Select(ctx context.Context, id string) error {
	if err := s.rdb.Set(ctx, s.selectedKey(), id, 0).Err(); err != nil {
		return err
	}
	s.notify(ctx, ChangeSelect, id)
	return nil
}

func (s *RedisStore) Selected(ctx context.Context) (string, bool, error) {
	id, err := s.rdb.Get(ctx, s.selectedKey()).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if id == "" {
		return "", false, nil
	}
	exists, err := s.rdb.HExists(ctx, s.notesKey(), id).Result()
	if err != nil {
		return "", false, err
	}
	if !exists {
		// Dangling pointer: the entry was removed after selection.
		return "", false, nil
	}
	return id, true, nil
}

func (s *RedisStore) ContentFor(ctx context.Context, id string) (string, bool, error) {
	content, err := s.rdb.HGet(ctx, s.notesKey(), id).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return content, true, nil
}

func (s *RedisStore) List(ctx context.Context) ([]Entry, error) {
	m, err := s.rdb.HGetAll(ctx, s.notesKey()).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(m))
	for id, content := range m {
		entries = append(entries, Entry{Id: id, Content: content})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Id < entries[j].Id })
	return entries, nil
}

func (s *RedisStore) notify(ctx context.Context, changeType, id string) {
	payload, err := json.Marshal(ChangeEvent{Type: changeType, Id: id})
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, s.Channel(), payload).Err(); err != nil {
		log.Printf("mirror: failed to publish change notification: %v", err)
	}
}
