package notifiedbody

import (
	"context"
	"sync"

	"en13813/pkg/requestcontext"
)

// Registry resolves a notified body by number and checks it against the
// required scopes. Every failure is a *LookupError.
type Registry interface {
	Lookup(ctx context.Context, number string, scopes []string) (*Body, error)
}

// StaticRegistry serves a fixed set of bodies. It backs local runs and tests.
type StaticRegistry struct {
	mu     sync.RWMutex
	bodies map[string]Body
}

func NewStaticRegistry(bodies ...Body) *StaticRegistry {
	r := &StaticRegistry{bodies: make(map[string]Body, len(bodies))}
	for _, b := range bodies {
		r.Put(b)
	}
	return r
}

// Put adds or replaces a body.
func (r *StaticRegistry) Put(b Body) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bodies[NormalizeNumber(b.Number)] = b
}

func (r *StaticRegistry) Lookup(ctx context.Context, number string, scopes []string) (*Body, error) {
	number = NormalizeNumber(number)
	if number == "" {
		return nil, NewLookupError(CategoryNotFound, number, "notified body number is empty", nil)
	}
	r.mu.RLock()
	b, ok := r.bodies[number]
	r.mu.RUnlock()
	if !ok {
		return nil, NewLookupError(CategoryNotFound, number, "notified body not registered", nil)
	}
	b.Scopes = append([]string(nil), b.Scopes...)
	if err := Verify(&b, scopes, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	return &b, nil
}
