package notifiedbody

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"en13813/pkg/platform/circuit"
)

type scriptedRegistry struct {
	calls int
	errs  []error
}

func (r *scriptedRegistry) Lookup(_ context.Context, number string, _ []string) (*Body, error) {
	i := r.calls
	r.calls++
	if i < len(r.errs) && r.errs[i] != nil {
		return nil, r.errs[i]
	}
	return &Body{Number: number}, nil
}

func TestBreakerRegistry(t *testing.T) {
	unavailable := NewLookupError(CategoryUnavailable, "0672", "registry unreachable", errors.New("dial tcp"))
	notFound := NewLookupError(CategoryNotFound, "0672", "no such body", nil)

	t.Run("opens after consecutive infrastructure failures", func(t *testing.T) {
		now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
		next := &scriptedRegistry{errs: []error{unavailable, unavailable}}
		b := circuit.New("registry", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Minute),
			circuit.WithClock(func() time.Time { return now }))
		reg := NewBreakerRegistry(next, b, nil)

		for range 2 {
			_, err := reg.Lookup(context.Background(), "0672", nil)
			require.Error(t, err)
		}
		assert.True(t, b.IsOpen())

		_, err := reg.Lookup(context.Background(), "0672", nil)
		assert.Equal(t, CategoryUnavailable, CategoryOf(err))
		assert.Equal(t, 2, next.calls, "open circuit does not call the registry")

		now = now.Add(time.Minute)
		body, err := reg.Lookup(context.Background(), "0672", nil)
		require.NoError(t, err)
		assert.Equal(t, "0672", body.Number)
		assert.False(t, b.IsOpen())
	})

	t.Run("registry answers keep the circuit closed", func(t *testing.T) {
		next := &scriptedRegistry{errs: []error{notFound, notFound, notFound}}
		b := circuit.New("registry", circuit.WithFailureThreshold(2))
		reg := NewBreakerRegistry(next, b, nil)

		for range 3 {
			_, err := reg.Lookup(context.Background(), "0672", nil)
			assert.Equal(t, CategoryNotFound, CategoryOf(err))
		}
		assert.False(t, b.IsOpen())
		assert.Equal(t, 3, next.calls)
	})
}
