package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/db"
)

const rowKey = "catalog:skincare:row:000000"

// --- client.go tests ---

func TestPing(t *testing.T) {
	tests := []struct {
		name    string
		result  rueidis.RedisResult
		wantErr bool
	}{
		{"pong", mock.Result(mock.RedisString("PONG")), false},
		{"deadline", mock.ErrorResult(context.DeadlineExceeded), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			c := mock.NewClient(ctrl)
			c.EXPECT().Do(gomock.Any(), mock.Match("PING")).Return(tc.result)

			err := NewStoreForTest(c).Ping(context.Background())
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error without addrs")
	}
}

// --- hash.go tests ---

func TestHSet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "HSET" && cmd[1] == rowKey && len(cmd) == 4
		})).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStoreForTest(c)
	if err := s.HSet(context.Background(), rowKey, map[string]string{"name": "Serum"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHSet_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "HSET" })).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	err := NewStoreForTest(c).HSet(context.Background(), rowKey, map[string]string{"f": "v"})
	if !isDBError(err, db.OpHSet) {
		t.Errorf("expected db.Error HSET, got %v", err)
	}
}

func TestHGetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HGETALL", rowKey)).
		Return(mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
			"name":  mock.RedisString("Serum"),
			"price": mock.RedisString("12.5"),
		})))

	m, err := NewStoreForTest(c).HGetAll(context.Background(), rowKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m["name"] != "Serum" || m["price"] != "12.5" {
		t.Errorf("unexpected map: %v", m)
	}
}

func TestHSetMulti(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(2)),
			mock.ErrorResult(errors.New("OOM")),
		})

	err := NewStoreForTest(c).HSetMulti(context.Background(), []db.HashSetItem{
		{Key: "k1", Fields: map[string]string{"f1": "v1"}},
		{Key: "k2", Fields: map[string]string{"f2": "v2"}},
	})
	if !isDBError(err, db.OpHSet) {
		t.Fatalf("expected db.Error HSET, got %v", err)
	}
}

func TestHSetMulti_Empty(t *testing.T) {
	s := NewStoreForTest(nil) // client not called
	if err := s.HSetMulti(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHGetAllMulti(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{"name": mock.RedisString("a")})),
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{"name": mock.RedisString("b")})),
		})

	results, err := NewStoreForTest(c).HGetAllMulti(context.Background(), []string{"k1", "k2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 || results[0]["name"] != "a" || results[1]["name"] != "b" {
		t.Errorf("unexpected results: %v", results)
	}
}

func TestHGetAllMulti_Empty(t *testing.T) {
	results, err := NewStoreForTest(nil).HGetAllMulti(context.Background(), nil)
	if err != nil || results != nil {
		t.Fatalf("got %v, %v", results, err)
	}
}

func TestDel(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "k1", "k2")).
		Return(mock.Result(mock.RedisInt64(2)))

	s := NewStoreForTest(c)
	if err := s.Del(context.Background(), "k1", "k2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Del(context.Background()); err != nil {
		t.Fatalf("no keys must be a no-op: %v", err)
	}
}

func TestExists(t *testing.T) {
	for _, n := range []int64{0, 1} {
		ctrl := gomock.NewController(t)
		c := mock.NewClient(ctrl)
		c.EXPECT().
			Do(gomock.Any(), mock.Match("EXISTS", rowKey)).
			Return(mock.Result(mock.RedisInt64(n)))

		ok, err := NewStoreForTest(c).Exists(context.Background(), rowKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok != (n == 1) {
			t.Errorf("Exists() = %v for count %d", ok, n)
		}
	}
}

func TestScan_MultiPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	first := true
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "SCAN" })).
		DoAndReturn(func(_ context.Context, _ rueidis.Completed) rueidis.RedisResult {
			if first {
				first = false
				return mock.Result(mock.RedisArray(
					mock.RedisInt64(42), // more pages
					mock.RedisArray(mock.RedisString("catalog:makeup:row:000000")),
				))
			}
			return mock.Result(mock.RedisArray(
				mock.RedisInt64(0),
				mock.RedisArray(mock.RedisString("catalog:makeup:row:000001")),
			))
		}).Times(2)

	keys, err := NewStoreForTest(c).Scan(context.Background(), "catalog:makeup:row:*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
}

// --- kv.go tests ---

func TestGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "manifest")).
		Return(mock.Result(mock.RedisBlobString(`{"rows":3}`)))

	data, err := NewStoreForTest(c).Get(context.Background(), "manifest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"rows":3}` {
		t.Errorf("unexpected data: %s", data)
	}
}

func TestGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "manifest")).
		Return(mock.Result(mock.RedisNil()))

	_, err := NewStoreForTest(c).Get(context.Background(), "manifest")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestGet_NetworkError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "manifest")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	_, err := NewStoreForTest(c).Get(context.Background(), "manifest")
	if errors.Is(err, db.ErrKeyNotFound) || !isDBError(err, db.OpGet) {
		t.Errorf("expected db.Error GET, got %v", err)
	}
}

func TestSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "manifest", "v")).
		Return(mock.Result(mock.RedisString("OK")))

	if err := NewStoreForTest(c).Set(context.Background(), "manifest", []byte("v")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- helpers ---

// isDBError reports whether err wraps a db.Error for op.
func isDBError(err error, op string) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr) && dbErr.Op == op
}
