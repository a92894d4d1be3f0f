package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"en13813/internal/recipe"
	id "en13813/pkg/domain"
	"en13813/pkg/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, err := recipe.NewService(recipe.NewInMemoryStore())
	require.NoError(t, err)
	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r
}

func TestRecipeLifecycle(t *testing.T) {
	testutil.Given(t, "an empty recipe catalogue", func(t *testing.T) {
		router := newTestRouter(t)

		testutil.When(t, "a recipe is registered", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/recipes", map[string]any{
				"name": "Floor CT",
				"properties": map[string]any{
					"binder_type":       "CT",
					"compressive_class": "C30",
					"flexural_class":    "F5",
				},
			}))
			testutil.AssertStatus(t, rr, http.StatusCreated)
			created := testutil.UnmarshalResponse[recipe.Recipe](t, rr)

			testutil.Then(t, "its designation is derived from the classes", func(t *testing.T) {
				assert.Equal(t, "CT-C30-F5", created.Designation)
			})

			testutil.Then(t, "it can be fetched by id", func(t *testing.T) {
				rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/recipes/"+created.ID.String()))
				testutil.AssertStatusOK(t, rr)
				testutil.AssertJSONContains(t, rr, "name", "Floor CT")
			})

			testutil.Then(t, "it is listed", func(t *testing.T) {
				rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/recipes"))
				testutil.AssertStatusOK(t, rr)
				list := testutil.UnmarshalResponse[ListResponse](t, rr)
				require.Len(t, list.Recipes, 1)
				assert.Equal(t, created.ID, list.Recipes[0].ID)
			})
		})
	})
}

func TestHandleCreate_Errors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"missing name", map[string]any{"properties": map[string]any{"binder_type": "CT", "compressive_class": "C30"}}, http.StatusBadRequest, "bad_request"},
		{"unknown field", map[string]any{"name": "x", "colour": "grey"}, http.StatusBadRequest, "bad_request"},
		{"no strength class", map[string]any{"name": "x", "properties": map[string]any{"binder_type": "CT"}}, http.StatusBadRequest, "format_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/recipes", tt.body))
			testutil.AssertStatusAndError(t, rr, tt.status, tt.code)
		})
	}
}

func TestHandleGet_Errors(t *testing.T) {
	router := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/recipes/not-a-uuid"))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/recipes/"+id.NewRecipeID().String()))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}
