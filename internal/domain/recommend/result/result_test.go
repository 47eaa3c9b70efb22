package result

import (
	"testing"

	"github.com/kailas-cloud/tagsim/internal/domain/item"
)

func TestNew(t *testing.T) {
	r := New(item.New(2, "B", "Action"), 0.5)

	it := r.Item()
	if it.ID() != 2 || it.Name() != "B" {
		t.Errorf("Item() = %d %q", it.ID(), it.Name())
	}
	if r.Score() != 0.5 {
		t.Errorf("Score() = %f", r.Score())
	}
}
