//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	conformityhandler "en13813/internal/conformity/handler"
	conformitymetrics "en13813/internal/conformity/metrics"
	declarationhandler "en13813/internal/declaration/handler"
	declarationmetrics "en13813/internal/declaration/metrics"
	declarationservice "en13813/internal/declaration/service"
	declarationstore "en13813/internal/declaration/store"
	designationhandler "en13813/internal/designation/handler"
	"en13813/internal/platform/metrics"
	"en13813/internal/recipe"
	recipehandler "en13813/internal/recipe/handler"
	httptransport "en13813/internal/transport/http"
)

// TestContext runs the full router over in-memory stores and remembers the
// last response and the ids created by a scenario.
type TestContext struct {
	server     *httptest.Server
	lastStatus int
	lastBody   []byte
	ids        map[string]string
}

// NewTestContext starts a fresh server. Every scenario gets its own stores.
func NewTestContext() (*TestContext, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()

	recipes := recipe.NewInMemoryStore()
	recipeSvc, err := recipe.NewService(recipes, recipe.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	declSvc, err := declarationservice.New(declarationstore.NewInMemoryStore(), recipes,
		declarationservice.WithLogger(logger),
		declarationservice.WithMetrics(declarationmetrics.NewWithRegisterer(reg)),
	)
	if err != nil {
		return nil, err
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   logger,
		Metrics:  metrics.NewWithRegisterer(reg),
		Gatherer: reg,
		Handlers: []httptransport.Registrar{
			designationhandler.New(nil, logger),
			conformityhandler.New(logger, conformitymetrics.NewWithRegisterer(reg)),
			recipehandler.New(recipeSvc, logger),
			declarationhandler.New(declSvc, logger),
		},
	})
	return &TestContext{server: httptest.NewServer(router), ids: map[string]string{}}, nil
}

func (tc *TestContext) Close() {
	tc.server.Close()
}

func (tc *TestContext) POST(path string, body any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(http.MethodPost, tc.server.URL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return tc.do(req)
}

func (tc *TestContext) GET(path string) error {
	req, err := http.NewRequest(http.MethodGet, tc.server.URL+path, nil)
	if err != nil {
		return err
	}
	return tc.do(req)
}

func (tc *TestContext) do(req *http.Request) error {
	resp, err := tc.server.Client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	tc.lastStatus = resp.StatusCode
	tc.lastBody, err = io.ReadAll(resp.Body)
	return err
}

func (tc *TestContext) LastStatus() int { return tc.lastStatus }

// ResponseField walks a dot-separated path through the last JSON body.
// Numeric segments index into arrays.
func (tc *TestContext) ResponseField(path string) (any, error) {
	var doc any
	if err := json.Unmarshal(tc.lastBody, &doc); err != nil {
		return nil, fmt.Errorf("decode response %q: %w", tc.lastBody, err)
	}
	cur := doc
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, fmt.Errorf("field %q not found in %s", path, tc.lastBody)
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("index %q out of range in %q", seg, path)
			}
			cur = node[i]
		default:
			return nil, fmt.Errorf("field %q: cannot descend into %T", path, cur)
		}
	}
	return cur, nil
}

func (tc *TestContext) SetID(name, value string) { tc.ids[name] = value }

func (tc *TestContext) ID(name string) string { return tc.ids[name] }
