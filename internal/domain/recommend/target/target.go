package target

import (
	"fmt"
	"strconv"

	"github.com/kailas-cloud/tagsim/internal/domain"
)

// Kind tells how a target reference is resolved against the catalog.
type Kind string

// Target kinds.
const (
	// Auto tries the identifier first when the reference is numeric, then the name.
	Auto Kind = "auto"
	ID   Kind = "id"
	Name Kind = "name"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Auto || k == ID || k == Name
}

// Target references the item recommendations are computed for.
type Target struct {
	kind  Kind
	id    int64
	hasID bool
	name  string
}

// ByID references an item by identifier.
func ByID(id int64) Target {
	return Target{kind: ID, id: id, hasID: true}
}

// ByName references an item by display name (exact match).
func ByName(name string) Target {
	return Target{kind: Name, name: name}
}

// Parse builds an Auto target from free-form input such as a CLI argument.
func Parse(ref string) Target {
	t := Target{kind: Auto, name: ref}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		t.id = id
		t.hasID = true
	}
	return t
}

// ParseKind builds a target of an explicit kind. An empty kind means Auto.
func ParseKind(kind Kind, ref string) (Target, error) {
	if kind == "" {
		kind = Auto
	}
	if !kind.IsValid() {
		return Target{}, fmt.Errorf("%w: invalid target kind %q", domain.ErrInvalidRequest, kind)
	}
	switch kind {
	case ID:
		id, err := strconv.ParseInt(ref, 10, 64)
		if err != nil {
			return Target{}, fmt.Errorf("%w: target %q is not a valid identifier", domain.ErrInvalidRequest, ref)
		}
		return ByID(id), nil
	case Name:
		return ByName(ref), nil
	default:
		return Parse(ref), nil
	}
}

// Kind returns the resolution strategy.
func (t Target) Kind() Kind { return t.kind }

// ID returns the identifier and whether the target carries one.
func (t Target) ID() (int64, bool) { return t.id, t.hasID }

// Name returns the name reference (the raw input for Auto targets).
func (t Target) Name() string { return t.name }

// IsZero reports whether the target references nothing.
func (t Target) IsZero() bool { return !t.hasID && t.name == "" }

func (t Target) String() string {
	switch t.kind {
	case ID:
		return fmt.Sprintf("id=%d", t.id)
	case Name:
		return fmt.Sprintf("name=%q", t.name)
	default:
		return fmt.Sprintf("%q", t.name)
	}
}
