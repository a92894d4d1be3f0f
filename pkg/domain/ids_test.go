package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "en13813/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseDeclarationID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseDeclarationID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseDeclarationID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseDeclarationID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, DeclarationID(validUUID), id)
	})
}

func TestParseID_TrustBoundary(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE declarations;--", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecipeID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	validUUID := uuid.New().String()

	_, errDecl := ParseDeclarationID(validUUID)
	_, errRecipe := ParseRecipeID(validUUID)
	_, errBatch := ParseBatchID(validUUID)
	_, errReport := ParseTestReportID(validUUID)
	require.NoError(t, errDecl)
	require.NoError(t, errRecipe)
	require.NoError(t, errBatch)
	require.NoError(t, errReport)

	for _, input := range []string{"", "invalid", uuid.Nil.String()} {
		t.Run("all reject: "+input, func(t *testing.T) {
			_, errDecl := ParseDeclarationID(input)
			_, errRecipe := ParseRecipeID(input)
			_, errBatch := ParseBatchID(input)
			_, errReport := ParseTestReportID(input)
			require.Error(t, errDecl)
			require.Error(t, errRecipe)
			require.Error(t, errBatch)
			require.Error(t, errReport)
		})
	}
}

func TestIDs_JSONText(t *testing.T) {
	id := NewDeclarationID()
	b, err := json.Marshal(map[string]DeclarationID{"id": id})
	require.NoError(t, err)
	assert.Contains(t, string(b), id.String())

	var decoded map[string]DeclarationID
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, id, decoded["id"])
}
