package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/menucatch/pkg/middleware"
)

const scannerOrigin = "http://scanner.menucatch.local"

func TestApplyOrder(t *testing.T) {
	var order []string
	mw := middleware.New()

	for _, name := range []string{"cors", "logger"} {
		mw.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		})
	}

	handler := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/scans", nil))

	want := []string{"cors", "logger", "handler"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestCORS(t *testing.T) {
	enabled := &middleware.CORSConfig{
		Enabled:          true,
		Origins:          []string{scannerOrigin},
		AllowedMethods:   []string{"GET", "POST", "DELETE"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           600,
	}

	tests := []struct {
		name        string
		cfg         *middleware.CORSConfig
		method      string
		origin      string
		wantOrigin  string
		wantMethods string
		wantCreds   string
		wantMaxAge  string
		wantHandler bool
	}{
		{
			name:        "disabled",
			cfg:         &middleware.CORSConfig{Enabled: false},
			method:      "GET",
			origin:      scannerOrigin,
			wantHandler: true,
		},
		{
			name:        "allowed origin",
			cfg:         enabled,
			method:      "POST",
			origin:      scannerOrigin,
			wantOrigin:  scannerOrigin,
			wantMethods: "GET, POST, DELETE",
			wantCreds:   "true",
			wantMaxAge:  "600",
			wantHandler: true,
		},
		{
			name:        "disallowed origin",
			cfg:         enabled,
			method:      "GET",
			origin:      "http://elsewhere.example",
			wantHandler: true,
		},
		{
			name:        "preflight",
			cfg:         enabled,
			method:      "OPTIONS",
			origin:      scannerOrigin,
			wantOrigin:  scannerOrigin,
			wantMethods: "GET, POST, DELETE",
			wantCreds:   "true",
			wantMaxAge:  "600",
			wantHandler: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := middleware.CORS(tt.cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/api/scans", nil)
			req.Header.Set("Origin", tt.origin)
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
			if called != tt.wantHandler {
				t.Errorf("handler called = %v, want %v", called, tt.wantHandler)
			}

			headers := map[string]string{
				"Access-Control-Allow-Origin":      tt.wantOrigin,
				"Access-Control-Allow-Methods":     tt.wantMethods,
				"Access-Control-Allow-Credentials": tt.wantCreds,
				"Access-Control-Max-Age":           tt.wantMaxAge,
			}
			for header, want := range headers {
				if got := rec.Header().Get(header); got != want {
					t.Errorf("%s = %q, want %q", header, got, want)
				}
			}
		})
	}
}

func TestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/scans/missing?x=1", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log entry: %v", err)
	}
	if entry["msg"] != "request" {
		t.Errorf("msg = %v, want request", entry["msg"])
	}
	if entry["status"] != float64(http.StatusNotFound) {
		t.Errorf("status = %v, want 404", entry["status"])
	}
	if entry["uri"] != "/api/scans/missing?x=1" {
		t.Errorf("uri = %v", entry["uri"])
	}
}

func TestLoggerDefaultsToOK(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log entry: %v", err)
	}
	if entry["status"] != float64(http.StatusOK) {
		t.Errorf("status = %v, want 200", entry["status"])
	}
}

func TestLoggerPreservesFlusher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var flushable bool
	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := w.(http.Flusher)
		flushable = ok
		w.Write([]byte("event: snapshot\n\n"))
		if ok {
			f.Flush()
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/scans/x/stream", nil))

	if !flushable {
		t.Fatal("wrapped writer does not implement http.Flusher")
	}
	if !rec.Flushed {
		t.Error("underlying recorder was not flushed")
	}
}

func TestMaxBytes(t *testing.T) {
	tests := []struct {
		name    string
		limit   int64
		body    string
		wantErr bool
	}{
		{"under limit", 32, `{"text":"라떼"}`, false},
		{"at limit", 17, `{"text":"라떼"}`, false},
		{"over limit", 8, `{"text":"아메리카노"}`, true},
		{"no limit", 0, strings.Repeat("가", 1024), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var readErr error
			handler := middleware.MaxBytes(tt.limit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, readErr = io.ReadAll(r.Body)
			}))

			req := httptest.NewRequest("POST", "/api/scans/resolve", strings.NewReader(tt.body))
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if (readErr != nil) != tt.wantErr {
				t.Errorf("read error = %v, want error %v", readErr, tt.wantErr)
			}
		})
	}
}

func TestCORSConfigFinalizeDefaults(t *testing.T) {
	cfg := middleware.CORSConfig{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if len(cfg.AllowedMethods) != 4 {
		t.Errorf("allowed_methods = %d, want 4", len(cfg.AllowedMethods))
	}
	if len(cfg.AllowedHeaders) != 2 {
		t.Errorf("allowed_headers = %d, want 2", len(cfg.AllowedHeaders))
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("max_age = %d, want 3600", cfg.MaxAge)
	}
}

func TestCORSConfigFinalizeEnv(t *testing.T) {
	t.Setenv("MENUCATCH_TEST_CORS_ENABLED", "true")
	t.Setenv("MENUCATCH_TEST_CORS_ORIGINS", scannerOrigin+", http://localhost:5173")

	env := &middleware.CORSEnv{
		Enabled: "MENUCATCH_TEST_CORS_ENABLED",
		Origins: "MENUCATCH_TEST_CORS_ORIGINS",
	}

	cfg := middleware.CORSConfig{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if !cfg.Enabled {
		t.Error("enabled = false, want true")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[0] != scannerOrigin || cfg.Origins[1] != "http://localhost:5173" {
		t.Errorf("origins = %v", cfg.Origins)
	}
}

func TestCORSConfigMerge(t *testing.T) {
	base := middleware.CORSConfig{
		Origins:        []string{"http://localhost:5173"},
		AllowedMethods: []string{"GET"},
		MaxAge:         3600,
	}

	base.Merge(&middleware.CORSConfig{
		Enabled: true,
		Origins: []string{scannerOrigin},
	})

	if !base.Enabled {
		t.Error("enabled = false after merge")
	}
	if len(base.Origins) != 1 || base.Origins[0] != scannerOrigin {
		t.Errorf("origins = %v", base.Origins)
	}
	if base.MaxAge != 3600 {
		t.Errorf("max_age = %d, want 3600", base.MaxAge)
	}
}

func TestCORSConfigFinalizeInvalidEnv(t *testing.T) {
	t.Setenv("MENUCATCH_TEST_CORS_ENABLED", "sometimes")
	t.Setenv("MENUCATCH_TEST_CORS_MAX_AGE", "forever")

	cfg := middleware.CORSConfig{}
	err := cfg.Finalize(&middleware.CORSEnv{
		Enabled: "MENUCATCH_TEST_CORS_ENABLED",
		MaxAge:  "MENUCATCH_TEST_CORS_MAX_AGE",
	})
	if err == nil {
		t.Fatal("Finalize accepted malformed overrides")
	}
	if !strings.Contains(err.Error(), "MENUCATCH_TEST_CORS_ENABLED") || !strings.Contains(err.Error(), "MENUCATCH_TEST_CORS_MAX_AGE") {
		t.Errorf("error = %v, want both variables named", err)
	}
}
