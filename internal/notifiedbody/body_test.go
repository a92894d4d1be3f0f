package notifiedbody

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "en13813/pkg/domain-errors"
	"en13813/pkg/requestcontext"
)

var now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, "0672", NormalizeNumber(" NB 0672 "))
	assert.Equal(t, "0672", NormalizeNumber("nb0672"))
	assert.Equal(t, "0672", NormalizeNumber("0672"))
	assert.Equal(t, "NB", NormalizeNumber("NB"))
}

func TestVerify(t *testing.T) {
	body := &Body{Number: "0672", Status: StatusActive, Scopes: []string{"EN 13813", "EN 13139"}}

	t.Run("active body with scopes", func(t *testing.T) {
		assert.NoError(t, Verify(body, []string{"en 13813"}, now))
		assert.NoError(t, Verify(body, nil, now))
	})

	t.Run("missing scope", func(t *testing.T) {
		err := Verify(body, []string{"EN 206"}, now)
		assert.Equal(t, CategoryUnauthorized, CategoryOf(err))
	})

	t.Run("expired notification", func(t *testing.T) {
		b := *body
		b.ValidUntil = ptr(now)
		err := Verify(&b, nil, now)
		assert.Equal(t, CategoryExpired, CategoryOf(err))
	})

	t.Run("withdrawn body", func(t *testing.T) {
		b := *body
		b.Status = StatusWithdrawn
		err := Verify(&b, nil, now)
		assert.Equal(t, CategoryExpired, CategoryOf(err))
	})
}

func TestLookupError(t *testing.T) {
	cause := context.DeadlineExceeded
	err := NewLookupError(CategoryTimeout, "0672", "registry lookup timed out", cause)

	assert.True(t, dErrors.HasCode(err, dErrors.CodeRegistryLookup))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, IsRetryable(err))
	assert.Contains(t, err.Error(), "[timeout]")

	notFound := NewLookupError(CategoryNotFound, "0672", "notified body not registered", nil)
	assert.False(t, IsRetryable(notFound))
	assert.True(t, dErrors.HasCode(notFound, dErrors.CodeRegistryLookup))
	assert.Equal(t, Category(""), CategoryOf(assert.AnError))
}

func TestStaticRegistry(t *testing.T) {
	reg := NewStaticRegistry(Body{Number: "NB 0672", Name: "MPA", Status: StatusActive, Scopes: []string{"EN 13813"}})
	ctx := requestcontext.WithTime(context.Background(), now)

	b, err := reg.Lookup(ctx, "0672", []string{"EN 13813"})
	require.NoError(t, err)
	assert.Equal(t, "MPA", b.Name)

	b.Scopes[0] = "changed"
	again, err := reg.Lookup(ctx, "0672", nil)
	require.NoError(t, err)
	assert.Equal(t, "EN 13813", again.Scopes[0])

	_, err = reg.Lookup(ctx, "9999", nil)
	assert.Equal(t, CategoryNotFound, CategoryOf(err))

	_, err = reg.Lookup(ctx, " ", nil)
	assert.Equal(t, CategoryNotFound, CategoryOf(err))
}
