package catalog

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/tagsim/internal/domain"
	"github.com/kailas-cloud/tagsim/internal/domain/item"
	"github.com/kailas-cloud/tagsim/internal/domain/recommend/target"
)

func sample(t *testing.T) *Catalog {
	t.Helper()
	c, err := New([]item.Item{
		item.New(1, "A", "Action, Comedy"),
		item.New(2, "B", "Action"),
		item.New(3, "C", "Comedy, Drama"),
		item.New(4, "D", ""),
		item.New(5, "A", "Drama"),
		item.New(42, "7", "Music"),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_DuplicateID(t *testing.T) {
	_, err := New([]item.Item{item.New(1, "A", ""), item.New(1, "B", "")})
	if !errors.Is(err, domain.ErrDuplicateItem) {
		t.Fatalf("expected ErrDuplicateItem, got %v", err)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	items := []item.Item{item.New(1, "A", ""), item.New(2, "B", "")}
	c, err := New(items)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	items[0] = item.New(9, "Z", "")
	first := c.At(0)
	if first.ID() != 1 {
		t.Errorf("catalog shares caller slice: At(0).ID() = %d", first.ID())
	}
}

func TestEmpty(t *testing.T) {
	c := Empty()
	if c.Len() != 0 {
		t.Errorf("Len() = %d", c.Len())
	}
	if _, _, err := c.Resolve(target.ByID(1)); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestItems_FreshSlice(t *testing.T) {
	c := sample(t)
	got := c.Items()
	got[0] = item.New(99, "X", "")
	first := c.At(0)
	if first.ID() != 1 {
		t.Error("Items() exposes internal storage")
	}
}

func TestNames(t *testing.T) {
	c := sample(t)
	names := c.Names()
	if len(names) != 6 || names[0] != "A" || names[3] != "D" {
		t.Errorf("Names() = %v", names)
	}
}

func TestResolve(t *testing.T) {
	c := sample(t)
	tests := []struct {
		name    string
		target  target.Target
		wantID  int64
		wantIdx int
	}{
		{"by id", target.ByID(3), 3, 2},
		{"by name", target.ByName("B"), 2, 1},
		{"duplicate name resolves first", target.ByName("A"), 1, 0},
		{"auto numeric id", target.Parse("4"), 4, 3},
		{"auto name", target.Parse("C"), 3, 2},
		{"auto numeric falls back to name", target.Parse("7"), 42, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, idx, err := c.Resolve(tt.target)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if it.ID() != tt.wantID || idx != tt.wantIdx {
				t.Errorf("Resolve() = (%d, %d), want (%d, %d)", it.ID(), idx, tt.wantID, tt.wantIdx)
			}
		})
	}
}

func TestResolve_NotFound(t *testing.T) {
	c := sample(t)
	for _, tg := range []target.Target{
		target.ByID(100),
		target.ByName("a"),
		target.ByName(" A"),
		target.Parse("Nope"),
		target.Parse(""),
		target.ByName("4"),
	} {
		if _, _, err := c.Resolve(tg); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Resolve(%s): expected ErrNotFound, got %v", tg, err)
		}
	}
}

func TestByID(t *testing.T) {
	c := sample(t)
	if it, ok := c.ByID(5); !ok || it.Name() != "A" {
		t.Errorf("ByID(5) = %v, %v", it.Name(), ok)
	}
	if _, ok := c.ByID(6); ok {
		t.Error("ByID(6) ok = true")
	}
	if i, ok := c.IndexOfID(42); !ok || i != 5 {
		t.Errorf("IndexOfID(42) = %d, %v", i, ok)
	}
}

func TestStats(t *testing.T) {
	s := sample(t).Stats()
	if s.Items != 6 {
		t.Errorf("Items = %d", s.Items)
	}
	if s.DistinctTags != 4 {
		t.Errorf("DistinctTags = %d, want 4", s.DistinctTags)
	}
	if s.Untagged != 1 {
		t.Errorf("Untagged = %d", s.Untagged)
	}
}
