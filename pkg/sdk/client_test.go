package tagsim

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/prometheus/client_golang/prometheus"
)

func scenarioItems() []Item {
	return []Item{
		{ID: 1, Name: "A", Tags: []string{"Action", "Comedy"}},
		{ID: 2, Name: "B", Tags: []string{"Action"}},
		{ID: 3, Name: "C", Tags: []string{"Comedy", "Drama"}},
		{ID: 4, Name: "D"},
	}
}

func newScenarioClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := New(context.Background(), append([]Option{WithItems(scenarioItems()...)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Action, Comedy", "Action|Comedy"},
		{"Comedy,Action", "Action|Comedy"},
		{" a ,, b, a ", "a|b"},
		{"", ""},
		{", ", ""},
	}
	for _, tt := range tests {
		if got := strings.Join(NormalizeTags(tt.raw), "|"); got != tt.want {
			t.Errorf("NormalizeTags(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity([]string{"a", "b"}, []string{"b", "c"}); math.Abs(got-1.0/3.0) > 1e-12 {
		t.Errorf("Similarity = %v, want 1/3", got)
	}
	if got := Similarity([]string{"a", "a"}, []string{"a"}); got != 1 {
		t.Errorf("duplicates: Similarity = %v, want 1", got)
	}
	if got := Similarity(nil, nil); got != 0 {
		t.Errorf("empty: Similarity = %v, want 0", got)
	}
}

func TestNew_NoSource(t *testing.T) {
	_, err := New(context.Background())
	if err == nil || !strings.Contains(err.Error(), "catalog source required") {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestNew_NoAddress(t *testing.T) {
	_, err := New(context.Background(), WithValkey("", ""))
	if err == nil || !strings.Contains(err.Error(), "address required") {
		t.Fatalf("expected address error, got %v", err)
	}
}

func TestNew_DuplicateItems(t *testing.T) {
	_, err := New(context.Background(), WithItems(Item{ID: 1, Name: "A"}, Item{ID: 1, Name: "B"}))
	if !errors.Is(err, ErrDuplicateItem) {
		t.Fatalf("expected ErrDuplicateItem, got %v", err)
	}
}

func TestClient_Recommend_Scenario(t *testing.T) {
	c := newScenarioClient(t)
	ctx := context.Background()

	for name, call := range map[string]func() ([]Recommendation, error){
		"auto id":   func() ([]Recommendation, error) { return c.Recommend(ctx, "1", 5) },
		"auto name": func() ([]Recommendation, error) { return c.Recommend(ctx, "A", 0) },
		"by id":     func() ([]Recommendation, error) { return c.RecommendByID(ctx, 1, 5) },
		"by name":   func() ([]Recommendation, error) { return c.RecommendByName(ctx, "A", 5) },
	} {
		t.Run(name, func(t *testing.T) {
			recs, err := call()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := []struct {
				id    int64
				score float64
			}{{2, 0.5}, {3, 1.0 / 3.0}, {4, 0}}
			if len(recs) != len(want) {
				t.Fatalf("got %d recommendations, want %d", len(recs), len(want))
			}
			for i, w := range want {
				if recs[i].ID != w.id || math.Abs(recs[i].Score-w.score) > 1e-12 {
					t.Errorf("recs[%d] = %+v, want id %d score %v", i, recs[i], w.id, w.score)
				}
			}
		})
	}
}

func TestClient_Recommend_Errors(t *testing.T) {
	c := newScenarioClient(t)
	ctx := context.Background()

	if _, err := c.Recommend(ctx, "Nope", 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown name: expected ErrNotFound, got %v", err)
	}
	if _, err := c.RecommendByID(ctx, 42, 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: expected ErrNotFound, got %v", err)
	}
	if _, err := c.RecommendByName(ctx, "1", 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("numeric name: expected ErrNotFound, got %v", err)
	}
	if _, err := c.Recommend(ctx, "A", -1); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("negative k: expected ErrInvalidRequest, got %v", err)
	}
}

func TestWithItems_TagWithComma(t *testing.T) {
	c, err := New(context.Background(), WithItems(
		Item{ID: 1, Name: "A", Tags: []string{"Drama, Romance"}},
		Item{ID: 2, Name: "B", Tags: []string{"Drama", "Romance"}},
		Item{ID: 3, Name: "C", Tags: []string{"Drama, Romance"}},
	))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	it, err := c.Item(context.Background(), 1)
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	if len(it.Tags) != 1 || it.Tags[0] != "Drama, Romance" {
		t.Errorf("Tags = %q, want a single tag", it.Tags)
	}

	recs, err := c.Recommend(context.Background(), "1", 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != 3 || recs[0].Score != 1 || recs[1].Score != 0 {
		t.Errorf("recs = %+v", recs)
	}
}

func TestClient_WithLimits(t *testing.T) {
	c := newScenarioClient(t, WithLimits(1, 2))
	ctx := context.Background()

	recs, err := c.Recommend(ctx, "1", 0)
	if err != nil || len(recs) != 1 {
		t.Fatalf("default k: got %d recs, err %v", len(recs), err)
	}
	recs, err = c.Recommend(ctx, "1", 50)
	if err != nil || len(recs) != 2 {
		t.Fatalf("clamped k: got %d recs, err %v", len(recs), err)
	}
}

func TestClient_CatalogQueries(t *testing.T) {
	c := newScenarioClient(t)
	ctx := context.Background()

	it, err := c.Item(ctx, 3)
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	if it.Name != "C" || strings.Join(it.Tags, ",") != "Comedy,Drama" {
		t.Errorf("Item = %+v", it)
	}
	if _, err := c.Item(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	names, err := c.Names(ctx)
	if err != nil || strings.Join(names, "") != "ABCD" {
		t.Errorf("Names = %v, %v", names, err)
	}

	st, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st != (Stats{Items: 4, DistinctTags: 3, Untagged: 1}) {
		t.Errorf("Stats = %+v", st)
	}

	h := c.Health(ctx)
	if h.Status != "ok" || h.Items != 4 || h.Checks["catalog"] != "ok" {
		t.Errorf("Health = %+v", h)
	}
	if _, ok := h.Checks["database"]; ok {
		t.Error("in-memory client must not report a database check")
	}
}

type parquetRow struct {
	ItemID int64   `parquet:"item_id"`
	Title  string  `parquet:"title"`
	Labels *string `parquet:"labels,optional"`
}

func TestNew_WithParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.parquet")
	action, mixed := "Action", "Action, Comedy"
	if err := parquet.WriteFile(path, []parquetRow{
		{ItemID: 10, Title: "First", Labels: &mixed},
		{ItemID: 20, Title: "Second", Labels: &action},
		{ItemID: 30, Title: "Third"},
	}); err != nil {
		t.Fatalf("write parquet: %v", err)
	}

	c, err := New(context.Background(),
		WithParquet(path),
		WithColumns(Columns{ID: "item_id", Name: "title", Tags: "labels"}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	recs, err := c.Recommend(context.Background(), "First", 1)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 1 || recs[0].Name != "Second" || recs[0].Score != 0.5 {
		t.Errorf("recs = %+v", recs)
	}
}

func TestNew_WithParquet_MissingFile(t *testing.T) {
	_, err := New(context.Background(), WithParquet(filepath.Join(t.TempDir(), "nope.parquet")))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestClient_WithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newScenarioClient(t, WithMetrics(reg))

	_, _ = c.Recommend(context.Background(), "1", 5)
	_, _ = c.Recommend(context.Background(), "Nope", 5)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	seen := make(map[string]bool)
	for _, f := range families {
		seen[f.GetName()] = true
	}
	for _, name := range []string{
		"tagsim_sdk_operations_total",
		"tagsim_recommend_requests_total",
		"tagsim_catalog_items",
	} {
		if !seen[name] {
			t.Errorf("metric %s not registered", name)
		}
	}
}

func TestClient_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := newScenarioClient(t, WithLogger(logger))

	_, _ = c.Recommend(context.Background(), "Nope", 5)
	if !strings.Contains(buf.String(), "op=recommend") || !strings.Contains(buf.String(), "operation failed") {
		t.Errorf("log output = %q", buf.String())
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{}
	c.Close() // must not panic
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("recommend", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("recommend", time.Now(), errors.New("fail"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "tagsim_sdk_operations_total" {
			found = true
			if len(f.GetMetric()) != 2 {
				t.Errorf("expected 2 metric samples, got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("tagsim_sdk_operations_total not found")
	}
}

func TestObserver_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("first newObserver: %v", err)
	}
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second newObserver: %v", err)
	}
}
