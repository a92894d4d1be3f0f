// Package domain holds identifiers shared by every bounded context.
//
// IDs are distinct named UUID types so a recipe ID can never be passed where a
// declaration ID is expected. Parse functions are the trust boundary: they
// reject empty, malformed and nil UUIDs with CodeInvalidInput.
package domain

import (
	"github.com/google/uuid"

	dErrors "en13813/pkg/domain-errors"
)

type (
	DeclarationID uuid.UUID
	RecipeID      uuid.UUID
	BatchID       uuid.UUID
	TestReportID  uuid.UUID
)

func (id DeclarationID) String() string { return uuid.UUID(id).String() }
func (id RecipeID) String() string      { return uuid.UUID(id).String() }
func (id BatchID) String() string       { return uuid.UUID(id).String() }
func (id TestReportID) String() string  { return uuid.UUID(id).String() }

func (id DeclarationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id RecipeID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id BatchID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id TestReportID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

func (id DeclarationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id RecipeID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id BatchID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id TestReportID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }

func (id *DeclarationID) UnmarshalText(b []byte) error { return unmarshalID((*uuid.UUID)(id), b) }
func (id *RecipeID) UnmarshalText(b []byte) error      { return unmarshalID((*uuid.UUID)(id), b) }
func (id *BatchID) UnmarshalText(b []byte) error       { return unmarshalID((*uuid.UUID)(id), b) }
func (id *TestReportID) UnmarshalText(b []byte) error  { return unmarshalID((*uuid.UUID)(id), b) }

func NewDeclarationID() DeclarationID { return DeclarationID(uuid.New()) }
func NewRecipeID() RecipeID           { return RecipeID(uuid.New()) }
func NewBatchID() BatchID             { return BatchID(uuid.New()) }
func NewTestReportID() TestReportID   { return TestReportID(uuid.New()) }

func ParseDeclarationID(s string) (DeclarationID, error) {
	u, err := parseUUID(s, "declaration_id")
	return DeclarationID(u), err
}

func ParseRecipeID(s string) (RecipeID, error) {
	u, err := parseUUID(s, "recipe_id")
	return RecipeID(u), err
}

func ParseBatchID(s string) (BatchID, error) {
	u, err := parseUUID(s, "batch_id")
	return BatchID(u), err
}

func ParseTestReportID(s string) (TestReportID, error) {
	u, err := parseUUID(s, "test_report_id")
	return TestReportID(u), err
}

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is required", field)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+field)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be nil", field)
	}
	return u, nil
}

func unmarshalID(dst *uuid.UUID, b []byte) error {
	if len(b) == 0 {
		*dst = uuid.Nil
		return nil
	}
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid identifier")
	}
	*dst = u
	return nil
}
