package fixtures

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ynput/ayon-test-fixtures/config"
	"github.com/ynput/ayon-test-fixtures/framework"
)

// acceptAllProjectRouter accepts every scaffold request and records the
// project deletions it receives.
func acceptAllProjectRouter(deleted *[]string) *chi.Mux {
	nextID := 0
	created := func(status int) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			nextID++
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"id": fmt.Sprintf("id-%d", nextID)})
		}
	}

	router := chi.NewRouter()
	router.Post("/api/projects", created(201))
	router.Put("/api/projects/{name}/links/types/{linkType}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(204)
	})
	for _, entity := range []string{"folders", "tasks", "products", "versions", "representations"} {
		router.Post("/api/projects/{name}/"+entity, created(201))
	}
	router.Post("/api/projects/{name}/links", created(200))
	router.Delete("/api/projects/{name}", func(w http.ResponseWriter, r *http.Request) {
		*deleted = append(*deleted, chi.URLParam(r, "name"))
		w.WriteHeader(204)
	})
	return router
}

func suiteTestNames(results framework.Results) []string {
	var names []string
	for _, r := range results.Tests {
		names = append(names, r.TestID.String())
	}
	return names
}

func TestSuiteRunsProjectFlowAgainstStubServer(t *testing.T) {
	var deleted []string
	server := httptest.NewServer(acceptAllProjectRouter(&deleted))
	defer server.Close()

	cfg := SuiteConfig{
		Server: config.Config{ServerURL: server.URL, APIKey: "key"},
	}
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("^project"))

	results := RunSuite(cfg, filters.AsFilter, nil)

	assert.True(t, results.OK(), "failures: %+v", results.Failures)
	assert.Contains(t, suiteTestNames(results), "project/scaffold and teardown")
	assert.Len(t, deleted, 1, "teardown must delete the scaffold project")

	var skipped []string
	for _, r := range results.Skips {
		skipped = append(skipped, r.TestID.String())
	}
	assert.Contains(t, skipped, "addon")
}

func TestSuiteReportsScaffoldFailure(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "name already taken", 409)
	})
	server := httptest.NewServer(router)
	defer server.Close()

	cfg := SuiteConfig{
		Server: config.Config{ServerURL: server.URL, APIKey: "key"},
	}
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("^project"))

	results := RunSuite(cfg, filters.AsFilter, nil)

	assert.False(t, results.OK())
	require.NotEmpty(t, results.Failures)
	assert.Equal(t, "project/scaffold and teardown", results.Failures[0].TestID.String())
}
