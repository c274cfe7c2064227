package featurecache

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/justestif/moodtunes/internal/catalog"
	"github.com/justestif/moodtunes/internal/db"
)

type fakeStore struct {
	rows     map[string]db.TrackFeatures
	getErr   error
	upserted []db.TrackFeatures
}

func (s *fakeStore) GetForTracks(_ context.Context, ids []string) (map[string]db.TrackFeatures, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	out := make(map[string]db.TrackFeatures)
	for _, id := range ids {
		if r, ok := s.rows[id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

func (s *fakeStore) UpsertBatch(_ context.Context, rows []db.TrackFeatures) error {
	s.upserted = append(s.upserted, rows...)
	return nil
}

type fakeCatalog struct {
	catalog.Catalog
	features  map[string]catalog.AudioFeatures
	err       error
	requested []string
}

func (c *fakeCatalog) AudioFeatures(_ context.Context, ids []string) (map[string]catalog.AudioFeatures, error) {
	c.requested = append(c.requested, ids...)
	if c.err != nil {
		return nil, c.err
	}
	out := make(map[string]catalog.AudioFeatures)
	for _, id := range ids {
		if f, ok := c.features[id]; ok {
			out[id] = f
		}
	}
	return out, nil
}

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestCache(next catalog.Catalog, store Store) *Catalog {
	c := New(next, store, 24*time.Hour)
	c.now = func() time.Time { return now }
	return c
}

func TestAudioFeatures(t *testing.T) {
	store := &fakeStore{rows: map[string]db.TrackFeatures{
		"fresh":         {TrackID: "fresh", Valence: 0.9, Energy: 0.8, FetchedAt: now.Add(-time.Hour)},
		"stale":         {TrackID: "stale", Valence: 0.1, FetchedAt: now.Add(-48 * time.Hour)},
		"known-missing": {TrackID: "known-missing", Missing: true, FetchedAt: now.Add(-time.Hour)},
	}}
	next := &fakeCatalog{features: map[string]catalog.AudioFeatures{
		"stale": {Valence: 0.5, Energy: 0.5},
		"new":   {Valence: 0.3, Energy: 0.4},
	}}

	c := newTestCache(next, store)
	got, err := c.AudioFeatures(context.Background(), []string{"fresh", "stale", "known-missing", "new", "unanalyzed"})
	if err != nil {
		t.Fatalf("AudioFeatures() error = %v", err)
	}

	if !slices.Equal(next.requested, []string{"stale", "new", "unanalyzed"}) {
		t.Errorf("fetched %v, want [stale new unanalyzed]", next.requested)
	}

	want := map[string]float64{"fresh": 0.9, "stale": 0.5, "new": 0.3}
	if len(got) != len(want) {
		t.Errorf("got %d bundles, want %d: %v", len(got), len(want), got)
	}
	for id, v := range want {
		if got[id].Valence != v {
			t.Errorf("%s valence = %v, want %v", id, got[id].Valence, v)
		}
	}

	if len(store.upserted) != 3 {
		t.Fatalf("upserted %d rows, want 3", len(store.upserted))
	}
	for _, r := range store.upserted {
		if r.Missing != (r.TrackID == "unanalyzed") {
			t.Errorf("%s Missing = %v", r.TrackID, r.Missing)
		}
		if !r.FetchedAt.Equal(now) {
			t.Errorf("%s FetchedAt = %v, want %v", r.TrackID, r.FetchedAt, now)
		}
	}
}

func TestAudioFeaturesAllCached(t *testing.T) {
	store := &fakeStore{rows: map[string]db.TrackFeatures{
		"a": {TrackID: "a", Energy: 0.7, FetchedAt: now},
	}}
	next := &fakeCatalog{}

	got, err := newTestCache(next, store).AudioFeatures(context.Background(), []string{"a"})
	if err != nil {
		t.Fatalf("AudioFeatures() error = %v", err)
	}
	if got["a"].Energy != 0.7 {
		t.Errorf("energy = %v, want 0.7", got["a"].Energy)
	}
	if len(next.requested) != 0 {
		t.Errorf("catalog called for %v, want no calls", next.requested)
	}
}

func TestAudioFeaturesStoreFailure(t *testing.T) {
	store := &fakeStore{getErr: errors.New("connection refused")}
	next := &fakeCatalog{features: map[string]catalog.AudioFeatures{"a": {Energy: 0.2}}}

	got, err := newTestCache(next, store).AudioFeatures(context.Background(), []string{"a"})
	if err != nil {
		t.Fatalf("AudioFeatures() error = %v", err)
	}
	if got["a"].Energy != 0.2 {
		t.Errorf("energy = %v, want 0.2", got["a"].Energy)
	}
}

func TestAudioFeaturesCatalogFailure(t *testing.T) {
	tests := []struct {
		name    string
		rows    map[string]db.TrackFeatures
		ids     []string
		wantErr bool
		want    []string
	}{
		{
			name:    "nothing cached",
			ids:     []string{"a"},
			wantErr: true,
		},
		{
			name: "cached hits survive",
			rows: map[string]db.TrackFeatures{
				"a": {TrackID: "a", Energy: 0.7, FetchedAt: now},
			},
			ids:  []string{"a", "b"},
			want: []string{"a"},
		},
		{
			name: "only known-missing cached",
			rows: map[string]db.TrackFeatures{
				"a": {TrackID: "a", Missing: true, FetchedAt: now},
			},
			ids:     []string{"a", "b"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{rows: tt.rows}
			next := &fakeCatalog{err: errors.New("503")}

			got, err := newTestCache(next, store).AudioFeatures(context.Background(), tt.ids)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AudioFeatures() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Errorf("got %d bundles, want %d: %v", len(got), len(tt.want), got)
			}
			for _, id := range tt.want {
				if _, ok := got[id]; !ok {
					t.Errorf("missing cached bundle %q", id)
				}
			}
			if len(store.upserted) != 0 {
				t.Errorf("upserted %d rows after failure, want 0", len(store.upserted))
			}
		})
	}
}

func TestAudioFeaturesEmpty(t *testing.T) {
	got, err := newTestCache(&fakeCatalog{}, &fakeStore{}).AudioFeatures(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Errorf("AudioFeatures(nil) = %v, %v", got, err)
	}
}
