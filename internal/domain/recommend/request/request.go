package request

import (
	"fmt"

	"github.com/kailas-cloud/tagsim/internal/domain"
	"github.com/kailas-cloud/tagsim/internal/domain/recommend/target"
)

// Recommendation size limits.
const (
	DefaultK = 5
	MaxK     = 500
)

// Request is a validated recommendation query.
type Request struct {
	target target.Target
	k      int
}

// Limits bounds K for one deployment. Zero fields fall back to DefaultK and MaxK.
type Limits struct {
	DefaultK int
	MaxK     int
}

// New validates and normalizes recommendation parameters.
// k == 0 means DefaultK; k above MaxK is clamped.
func New(t target.Target, k int) (Request, error) {
	return Limits{}.New(t, k)
}

// Bounds returns the effective default and maximum K.
func (l Limits) Bounds() (defaultK, maxK int) {
	defaultK, maxK = l.DefaultK, l.MaxK
	if maxK <= 0 || maxK > MaxK {
		maxK = MaxK
	}
	if defaultK <= 0 {
		defaultK = DefaultK
	}
	return min(defaultK, maxK), maxK
}

// New validates parameters against the configured limits.
func (l Limits) New(t target.Target, k int) (Request, error) {
	defaultK, maxK := l.Bounds()

	if t.IsZero() {
		return Request{}, fmt.Errorf("%w: target is required", domain.ErrInvalidRequest)
	}
	if k < 0 {
		return Request{}, fmt.Errorf("%w: k must not be negative, got %d", domain.ErrInvalidRequest, k)
	}
	if k == 0 {
		k = defaultK
	}
	if k > maxK {
		k = maxK
	}
	return Request{target: t, k: k}, nil
}

// Target returns the item recommendations are computed for.
func (r *Request) Target() target.Target { return r.target }

// K returns the maximum number of results.
func (r *Request) K() int { return r.k }
