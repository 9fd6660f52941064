package config_test

import (
	"os"
	"path/filepath"
	"testing"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/menucatch/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MENUCATCH_DB_NAME", "menucatch")
	t.Setenv("MENUCATCH_DB_USER", "menucatch")
	t.Setenv("MENUCATCH_STORAGE_CONNECTION_STRING", "UseDevelopmentStorage=true")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequiredEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env() != "local" {
		t.Errorf("env = %s, want local", cfg.Env())
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("base path = %s, want /api", cfg.API.BasePath)
	}
	if got := cfg.API.MaxBodySizeBytes(); got != 1024*1024 {
		t.Errorf("max body size = %d, want %d", got, 1024*1024)
	}
	if cfg.Storage.ContainerName != "scans" {
		t.Errorf("container = %s, want scans", cfg.Storage.ContainerName)
	}

	r := cfg.Resolver
	if r.MaxHypotheses != 8 || r.MinLength != 2 || r.MaxLength != 30 || r.Concurrency != 1 {
		t.Errorf("resolver = %+v", r)
	}
	if r.Classifier != "lexicon" || r.UsesAgent() {
		t.Errorf("classifier = %s, want lexicon", r.Classifier)
	}
}

func TestLoadFileAndOverlay(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	setRequiredEnv(t)
	t.Setenv("MENUCATCH_ENV", "test")

	writeFile(t, dir, "config.toml", `
version = "1.2.0"

[api]
base_path = "/v1"

[resolver]
max_hypotheses = 4
concurrency = 2
`)

	writeFile(t, dir, "config.test.toml", `
[resolver]
concurrency = 6
max_length = 40
`)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Version != "1.2.0" {
		t.Errorf("version = %s, want 1.2.0", cfg.Version)
	}
	if cfg.API.BasePath != "/v1" {
		t.Errorf("base path = %s, want /v1", cfg.API.BasePath)
	}

	r := cfg.Resolver
	if r.MaxHypotheses != 4 {
		t.Errorf("max_hypotheses = %d, want 4", r.MaxHypotheses)
	}
	if r.Concurrency != 6 {
		t.Errorf("concurrency = %d, want 6", r.Concurrency)
	}
	if r.MaxLength != 40 {
		t.Errorf("max_length = %d, want 40", r.MaxLength)
	}
	if r.MinLength != 2 {
		t.Errorf("min_length = %d, want 2", r.MinLength)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequiredEnv(t)
	t.Setenv("MENUCATCH_RESOLVER_CONCURRENCY", "3")
	t.Setenv("MENUCATCH_RESOLVER_MIN_LENGTH", "1")
	t.Setenv("MENUCATCH_API_MAX_BODY_SIZE", "256KB")
	t.Setenv("MENUCATCH_SERVER_PORT", "9090")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Resolver.Concurrency != 3 {
		t.Errorf("concurrency = %d, want 3", cfg.Resolver.Concurrency)
	}
	if cfg.Resolver.MinLength != 1 {
		t.Errorf("min_length = %d, want 1", cfg.Resolver.MinLength)
	}
	if got := cfg.API.MaxBodySizeBytes(); got != 256*1024 {
		t.Errorf("max body size = %d, want %d", got, 256*1024)
	}
	if cfg.Server.Addr() != "0.0.0.0:9090" {
		t.Errorf("addr = %s, want 0.0.0.0:9090", cfg.Server.Addr())
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown classifier", map[string]string{"MENUCATCH_RESOLVER_CLASSIFIER": "oracle"}},
		{"negative concurrency", map[string]string{"MENUCATCH_RESOLVER_CONCURRENCY": "-1"}},
		{"max below min", map[string]string{"MENUCATCH_RESOLVER_MIN_LENGTH": "10", "MENUCATCH_RESOLVER_MAX_LENGTH": "5"}},
		{"bad body size", map[string]string{"MENUCATCH_API_MAX_BODY_SIZE": "lots"}},
		{"bad shutdown timeout", map[string]string{"MENUCATCH_SHUTDOWN_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := config.Load(); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}
}

func TestResolverConfigFilter(t *testing.T) {
	r := config.ResolverConfig{MinLength: 3, MaxLength: 12}
	f := r.Filter()

	if f.MinLength != 3 || f.MaxLength != 12 {
		t.Errorf("filter = %+v, want 3/12", f)
	}
	if f.Eligible("라떼") {
		t.Error("two-letter fragment eligible with min length 3")
	}
	if !f.Eligible("카페라떼") {
		t.Error("four-letter fragment not eligible")
	}
}

func TestResolverConfigMerge(t *testing.T) {
	base := config.ResolverConfig{MaxHypotheses: 8, Concurrency: 1, Classifier: "lexicon"}
	base.Merge(&config.ResolverConfig{Concurrency: 4, Classifier: "agent"})

	if base.MaxHypotheses != 8 {
		t.Errorf("max_hypotheses = %d, want 8", base.MaxHypotheses)
	}
	if base.Concurrency != 4 {
		t.Errorf("concurrency = %d, want 4", base.Concurrency)
	}
	if !base.UsesAgent() {
		t.Error("UsesAgent = false after merging agent classifier")
	}
}

func TestLoggingConfigFinalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LoggingConfig
		env     map[string]string
		want    string
		wantErr bool
	}{
		{name: "defaults", want: "INFO"},
		{name: "env level", env: map[string]string{config.EnvLogLevel: "debug"}, want: "DEBUG"},
		{name: "upper case format", cfg: config.LoggingConfig{Level: "warn", Format: "JSON"}, want: "WARN"},
		{name: "unknown level", cfg: config.LoggingConfig{Level: "loud"}, wantErr: true},
		{name: "unknown format", cfg: config.LoggingConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := tt.cfg
			err := cfg.Finalize()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.SlogLevel().String() != tt.want {
				t.Errorf("level = %s, want %s", cfg.SlogLevel(), tt.want)
			}
		})
	}
}

func TestServerConfigDurations(t *testing.T) {
	cfg := config.ServerConfig{WriteTimeout: "0s"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.ReadTimeoutDuration().String() != "1m0s" {
		t.Errorf("read timeout = %s, want 1m0s", cfg.ReadTimeoutDuration())
	}
	if cfg.WriteTimeoutDuration() != 0 {
		t.Errorf("write timeout = %s, want 0s", cfg.WriteTimeoutDuration())
	}
	if cfg.ShutdownTimeoutDuration().String() != "30s" {
		t.Errorf("shutdown timeout = %s, want 30s", cfg.ShutdownTimeoutDuration())
	}

	t.Setenv(config.EnvServerPort, "eighty")
	if err := (&config.ServerConfig{}).Finalize(); err == nil {
		t.Error("Finalize accepted non-numeric port")
	}
}

func TestFinalizeAgentEnv(t *testing.T) {
	t.Setenv(config.EnvAgentProviderName, "azure")
	t.Setenv(config.EnvAgentModelName, "gpt-4o-mini")
	t.Setenv(config.EnvAgentToken, "secret")

	var cfg gaconfig.AgentConfig
	if err := config.FinalizeAgent(&cfg); err != nil {
		t.Fatalf("FinalizeAgent: %v", err)
	}

	if cfg.Provider.Name != "azure" {
		t.Errorf("provider = %s, want azure", cfg.Provider.Name)
	}
	if cfg.Model.Name != "gpt-4o-mini" {
		t.Errorf("model = %s, want gpt-4o-mini", cfg.Model.Name)
	}
	if cfg.Provider.Options["token"] != "secret" {
		t.Errorf("token option = %v", cfg.Provider.Options["token"])
	}
	if cfg.Name == "" {
		t.Error("agent name empty after finalize")
	}
}
