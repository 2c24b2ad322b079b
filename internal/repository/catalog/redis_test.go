package catalog

import (
	"context"
	"errors"
	"path"
	"sort"
	"testing"
	"time"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/db"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
	domcat "github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/product"
)

// memStore is an in-memory store for repository tests.
type memStore struct {
	hashes map[string]map[string]string
	kv     map[string][]byte
	hsetFn func(items []db.HashSetItem) error
	calls  []string
}

func newMemStore() *memStore {
	return &memStore{hashes: map[string]map[string]string{}, kv: map[string][]byte{}}
}

func (m *memStore) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	m.calls = append(m.calls, "HSET")
	if m.hsetFn != nil {
		if err := m.hsetFn(items); err != nil {
			return err
		}
	}
	for _, it := range items {
		h := map[string]string{}
		for k, v := range it.Fields {
			h[k] = v
		}
		m.hashes[it.Key] = h
	}
	return nil
}

func (m *memStore) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	m.calls = append(m.calls, "HGETALL")
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i] = m.hashes[k]
		if out[i] == nil {
			out[i] = map[string]string{}
		}
	}
	return out, nil
}

func (m *memStore) Del(_ context.Context, keys ...string) error {
	m.calls = append(m.calls, "DEL")
	for _, k := range keys {
		delete(m.hashes, k)
		delete(m.kv, k)
	}
	return nil
}

func (m *memStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.kv[key]
	if !ok {
		_, ok = m.hashes[key]
	}
	return ok, nil
}

func (m *memStore) Scan(_ context.Context, pattern string) ([]string, error) {
	var keys []string
	for k := range m.hashes {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.calls = append(m.calls, "SET")
	m.kv[key] = value
	return nil
}

func snapshotOf(t *testing.T, kind domcat.Kind, names ...string) domcat.Snapshot {
	t.Helper()
	recs := make([]product.Record, 0, len(names))
	for i, n := range names {
		r, err := product.New("", product.Fields{
			Name:   n,
			Brand:  "Acme",
			Price:  float64(i) + 0.5,
			Rating: 4,
			Tags:   map[string]string{product.TagSkinType: "Oily,Dry"},
			Texts:  map[string]string{product.TextIngredients: "water " + n},
		})
		if err != nil {
			t.Fatal(err)
		}
		recs = append(recs, r)
	}
	snap, err := domcat.NewSnapshot(kind, recs)
	if err != nil {
		t.Fatal(err)
	}
	return snap
}

func TestRedisRepo_SaveLoad(t *testing.T) {
	st := newMemStore()
	repo := NewRedis(st, "beauty:", nil)
	repo.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	if err := repo.Save(context.Background(), snapshotOf(t, domcat.KindMakeup, "Fit Me", "Matte Stick")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := st.hashes["beauty:catalog:makeup:row:000001"]; !ok {
		t.Fatalf("row key missing: %v", st.hashes)
	}

	m, err := repo.Manifest(context.Background(), domcat.KindMakeup)
	if err != nil || m.Rows != 2 || !m.ImportedAt.Equal(repo.now()) {
		t.Fatalf("manifest = %+v, %v", m, err)
	}

	snap, err := repo.Load(context.Background(), domcat.KindMakeup)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Len() != 2 || snap.At(0).Name() != "Fit Me" || snap.At(1).Name() != "Matte Stick" {
		t.Fatalf("unexpected snapshot order")
	}
	r := snap.At(1)
	if r.Price() != 1.5 || r.Rating() != 4 || r.Tag(product.TagSkinType) != "Oily,Dry" ||
		r.Text(product.TextIngredients) != "water Matte Stick" {
		t.Errorf("round trip = %+v", r.Fields())
	}

	ok, err := repo.Imported(context.Background(), domcat.KindMakeup)
	if err != nil || !ok {
		t.Errorf("Imported() = %v, %v", ok, err)
	}
}

func TestRedisRepo_SaveDeletesStaleRows(t *testing.T) {
	st := newMemStore()
	repo := NewRedis(st, "", nil)

	if err := repo.Save(context.Background(), snapshotOf(t, domcat.KindSkincare, "a", "b", "c")); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(context.Background(), snapshotOf(t, domcat.KindSkincare, "z")); err != nil {
		t.Fatal(err)
	}
	if len(st.hashes) != 1 {
		t.Fatalf("expected 1 row left, got %d", len(st.hashes))
	}

	// rows are written before the manifest, stale rows removed last
	last := st.calls[len(st.calls)-3:]
	if last[0] != "HSET" || last[1] != "SET" || last[2] != "DEL" {
		t.Errorf("call order = %v", st.calls)
	}
}

func TestRedisRepo_SaveRowError(t *testing.T) {
	st := newMemStore()
	st.hsetFn = func([]db.HashSetItem) error { return &db.Error{Op: db.OpHSet, Err: errors.New("OOM")} }
	repo := NewRedis(st, "", nil)

	err := repo.Save(context.Background(), snapshotOf(t, domcat.KindSkincare, "a"))
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := st.kv["catalog:skincare:manifest"]; ok {
		t.Error("manifest must not be written when rows fail")
	}
}

func TestRedisRepo_LoadNotImported(t *testing.T) {
	repo := NewRedis(newMemStore(), "", nil)
	_, err := repo.Load(context.Background(), domcat.KindCosmetic)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisRepo_LoadSkipsBrokenRows(t *testing.T) {
	st := newMemStore()
	st.kv["catalog:cosmetic:manifest"] = []byte(`{"rows":3}`)
	st.hashes["catalog:cosmetic:row:000000"] = map[string]string{"name": "Velvet Tint", "price": "12"}
	st.hashes["catalog:cosmetic:row:000001"] = map[string]string{"name": "Broken", "price": "cheap"}
	// row 2 missing

	snap, err := NewRedis(st, "", nil).Load(context.Background(), domcat.KindCosmetic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Len() != 1 || snap.At(0).Price() != 12 {
		t.Errorf("snapshot len %d", snap.Len())
	}
}

func TestRedisRepo_BadManifest(t *testing.T) {
	st := newMemStore()
	st.kv["catalog:cosmetic:manifest"] = []byte(`{"rows":-1}`)
	if _, err := NewRedis(st, "", nil).Load(context.Background(), domcat.KindCosmetic); err == nil {
		t.Fatal("expected error for negative row count")
	}
}
