package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/tagsim/internal/domain"
	"github.com/kailas-cloud/tagsim/internal/domain/recommend/target"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New(target.ByID(1), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.K() != DefaultK {
		t.Errorf("K() = %d, want %d", r.K(), DefaultK)
	}
	if id, _ := r.Target().ID(); id != 1 {
		t.Errorf("Target().ID() = %d", id)
	}
}

func TestNew_KClamping(t *testing.T) {
	tests := []struct {
		name  string
		k     int
		wantK int
	}{
		{"zero", 0, DefaultK},
		{"one", 1, 1},
		{"normal", 20, 20},
		{"exactly max", MaxK, MaxK},
		{"over max", MaxK + 1, MaxK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(target.ByName("A"), tt.k)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.K() != tt.wantK {
				t.Errorf("K() = %d, want %d", r.K(), tt.wantK)
			}
		})
	}
}

func TestNew_NegativeK(t *testing.T) {
	_, err := New(target.ByID(1), -1)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "negative") {
		t.Errorf("error = %q", err)
	}
}

func TestNew_EmptyTarget(t *testing.T) {
	_, err := New(target.Parse(""), 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "required") {
		t.Errorf("error = %q", err)
	}
}

func TestNew_ErrorsAreInvalidRequest(t *testing.T) {
	if _, err := New(target.ByID(1), -3); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("negative k: expected ErrInvalidRequest, got %v", err)
	}
	if _, err := New(target.ByName(""), 1); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("empty target: expected ErrInvalidRequest, got %v", err)
	}
}

func TestLimits(t *testing.T) {
	tests := []struct {
		name   string
		limits Limits
		k      int
		want   int
	}{
		{"configured default", Limits{DefaultK: 10, MaxK: 50}, 0, 10},
		{"configured clamp", Limits{DefaultK: 10, MaxK: 50}, 80, 50},
		{"default above max", Limits{DefaultK: 20, MaxK: 8}, 0, 8},
		{"max above hard limit", Limits{MaxK: 10000}, 10000, MaxK},
		{"zero limits", Limits{}, 0, DefaultK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.limits.New(target.ByID(1), tt.k)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.K() != tt.want {
				t.Errorf("K() = %d, want %d", r.K(), tt.want)
			}
		})
	}
}

func TestLimits_Bounds(t *testing.T) {
	d, m := Limits{DefaultK: 50, MaxK: 20}.Bounds()
	if d != 20 || m != 20 {
		t.Errorf("Bounds() = (%d, %d), want (20, 20)", d, m)
	}
	d, m = Limits{}.Bounds()
	if d != DefaultK || m != MaxK {
		t.Errorf("Bounds() = (%d, %d), want (%d, %d)", d, m, DefaultK, MaxK)
	}
}
