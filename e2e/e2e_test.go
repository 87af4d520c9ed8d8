//go:build e2e

package e2e_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rogpeppe/go-internal/testscript"
)

var coursewareBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "courseware-e2e-*")
	if err != nil {
		panic(err)
	}

	coursewareBinary = filepath.Join(tmpDir, "courseware")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", coursewareBinary, "./cmd/courseware")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build courseware binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	binDir := filepath.Dir(coursewareBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("COURSEWARE_HOME", homeDir)

	srv := httptest.NewServer(newBackend().routes())
	env.Defer(srv.Close)
	env.Setenv("COURSEWARE_API_URL", srv.URL+"/api")
	env.Setenv("COURSEWARE_WS_URL", "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws")

	return nil
}

// backend is an in-memory stand-in for the LMS API, one per script.
type backend struct {
	mu         sync.Mutex
	nextID     int
	categories []map[string]any
}

func newBackend() *backend {
	return &backend{
		nextID: 2,
		categories: []map[string]any{
			{"_id": "c1", "name": "Cloud", "description": "Infrastructure and operations"},
		},
	}
}

func (b *backend) routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/category", func(w http.ResponseWriter, _ *http.Request) {
			b.mu.Lock()
			defer b.mu.Unlock()
			writeJSON(w, http.StatusOK, envelope(b.categories))
		})
		r.With(requireToken).Post("/category", b.createCategory)
		r.With(requireToken).Delete("/category/{id}", b.deleteCategory)
		r.Get("/client", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"clients": []map[string]any{
				{"_id": "cl1", "name": "Acme", "company": "Acme Ltd", "email": "ops@acme.test"},
			}})
		})
		r.Get("/courses", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, []any{})
		})
		r.Get("/pedagogy", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, envelope([]any{}))
		})
	})
	return r
}

func (b *backend) createCategory(w http.ResponseWriter, r *http.Request) {
	var in map[string]any
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	in["_id"] = fmt.Sprintf("c%d", b.nextID)
	b.nextID++
	b.categories = append(b.categories, in)
	writeJSON(w, http.StatusCreated, envelope(in))
}

func (b *backend) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, c := range b.categories {
		if c["_id"] == id {
			b.categories = append(b.categories[:i], b.categories[i+1:]...)
			writeJSON(w, http.StatusOK, envelope(c))
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "category not found"})
}

func requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "no token provided"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func envelope(data any) map[string]any {
	return map[string]any{"success": true, "message": "ok", "data": data}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
