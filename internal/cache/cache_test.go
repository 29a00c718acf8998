package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// An unreachable Redis must never break reads; the cache degrades to the
// loader.
func TestGetOrLoadFallsThroughWithoutRedis(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	c := New(rdb, time.Second)

	calls := 0
	got, err := c.GetOrLoad(context.Background(), "k", func(context.Context) ([]byte, error) {
		calls++
		return []byte("payload"), nil
	})
	if err != nil {
		t.Fatalf("get or load: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("got %q, want payload", got)
	}
	if calls != 1 {
		t.Errorf("loader calls = %d, want 1", calls)
	}
}

func TestGetOrLoadPropagatesLoaderError(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	c := New(rdb, time.Second)

	wantErr := errors.New("load failed")
	_, err := c.GetOrLoad(context.Background(), "k", func(context.Context) ([]byte, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestGetOrLoadJSON(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	c := New(rdb, time.Second)

	type item struct {
		Name string `json:"name"`
	}
	got, err := GetOrLoadJSON(c, context.Background(), "k", func(context.Context) ([]item, error) {
		return []item{{Name: "a"}, {Name: "b"}}, nil
	})
	if err != nil {
		t.Fatalf("get or load json: %v", err)
	}
	if len(got) != 2 || got[0].Name != "a" {
		t.Errorf("got %+v", got)
	}
}
