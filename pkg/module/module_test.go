package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skyhook-labs/talon/pkg/module"
)

func echoPath() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	})
}

func TestNewInvalidPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"empty", ""},
		{"no leading slash", "api"},
		{"multi level", "/api/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%q) should panic", tt.prefix)
				}
			}()
			module.New(tt.prefix, echoPath())
		})
	}
}

func TestServeStripsPrefix(t *testing.T) {
	m := module.New("/api", echoPath())

	tests := []struct {
		path string
		want string
	}{
		{"/api/narratives", "/narratives"},
		{"/api", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			m.Serve(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if got := rec.Body.String(); got != tt.want {
				t.Errorf("inner path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModuleMiddlewareOrder(t *testing.T) {
	m := module.New("/api", echoPath())

	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	m.Use(mw("first"))
	m.Use(mw("second"))

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest(http.MethodGet, "/api/x", nil))

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("middleware order = %v, want [first second]", order)
	}
}

func TestRouterDispatch(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", echoPath()))
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	tests := []struct {
		path string
		want string
	}{
		{"/api/cases", "/cases"},
		{"/api/cases/", "/cases"},
		{"/healthz", "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if got := rec.Body.String(); got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRouterUnmatchedPrefix(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", echoPath()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown/path", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for unmatched prefix", rec.Code)
	}
}
