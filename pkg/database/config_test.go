package database_test

import (
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/menucatch/pkg/database"
)

func TestFinalizeDefaults(t *testing.T) {
	cfg := database.Config{Name: "menucatch", User: "menucatch"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"host", cfg.Host, "localhost"},
		{"port", cfg.Port, 5432},
		{"ssl_mode", cfg.SSLMode, "disable"},
		{"application_name", cfg.ApplicationName, "menucatch"},
		{"max_open_conns", cfg.MaxOpenConns, 25},
		{"max_idle_conns", cfg.MaxIdleConns, 5},
		{"conn_max_lifetime", cfg.ConnMaxLifetime, "15m"},
		{"conn_timeout", cfg.ConnTimeout, "5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "catalog-db")
	t.Setenv("TEST_DB_PORT", "5433")
	t.Setenv("TEST_DB_NAME", "catalog")
	t.Setenv("TEST_DB_USER", "reader")
	t.Setenv("TEST_DB_MAX_OPEN", "50")
	t.Setenv("TEST_DB_MAX_IDLE", "nope")
	t.Setenv("TEST_DB_APP", "menucatch-worker")

	env := &database.Env{
		Host:            "TEST_DB_HOST",
		Port:            "TEST_DB_PORT",
		Name:            "TEST_DB_NAME",
		User:            "TEST_DB_USER",
		MaxOpenConns:    "TEST_DB_MAX_OPEN",
		MaxIdleConns:    "TEST_DB_MAX_IDLE",
		ApplicationName: "TEST_DB_APP",
	}

	cfg := database.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.Host != "catalog-db" || cfg.Port != 5433 {
		t.Errorf("addr = %s:%d, want catalog-db:5433", cfg.Host, cfg.Port)
	}
	if cfg.Name != "catalog" || cfg.User != "reader" {
		t.Errorf("name/user = %s/%s, want catalog/reader", cfg.Name, cfg.User)
	}
	if cfg.MaxOpenConns != 50 {
		t.Errorf("max_open_conns = %d, want 50", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns != 5 {
		t.Errorf("max_idle_conns = %d, want default 5 for unparsable env", cfg.MaxIdleConns)
	}
	if cfg.ApplicationName != "menucatch-worker" {
		t.Errorf("application_name = %s", cfg.ApplicationName)
	}
}

func TestFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     database.Config
		wantErr string
	}{
		{"missing name", database.Config{User: "menucatch"}, "name required"},
		{"missing user", database.Config{Name: "menucatch"}, "user required"},
		{"idle above open", database.Config{Name: "m", User: "m", MaxOpenConns: 2, MaxIdleConns: 4}, "max_idle_conns"},
		{"invalid conn_max_lifetime", database.Config{Name: "m", User: "m", ConnMaxLifetime: "bad"}, "invalid conn_max_lifetime"},
		{"invalid conn_timeout", database.Config{Name: "m", User: "m", ConnTimeout: "bad"}, "invalid conn_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if err == nil {
				t.Fatal("Finalize returned nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := database.Config{
		Host:         "localhost",
		Port:         5432,
		Name:         "menucatch",
		User:         "menucatch",
		MaxOpenConns: 25,
	}

	base.Merge(&database.Config{Host: "catalog-db", Port: 5433})

	if base.Host != "catalog-db" || base.Port != 5433 {
		t.Errorf("addr = %s:%d, want catalog-db:5433", base.Host, base.Port)
	}
	if base.Name != "menucatch" || base.User != "menucatch" || base.MaxOpenConns != 25 {
		t.Errorf("zero overlay fields replaced base values: %+v", base)
	}
}

func TestDsn(t *testing.T) {
	cfg := database.Config{
		Host:     "localhost",
		Port:     5432,
		Name:     "menucatch",
		User:     "menucatch",
		Password: `it's a\secret`,
		SSLMode:  "disable",
	}

	want := `host='localhost' port=5432 dbname='menucatch' user='menucatch' password='it\'s a\\secret' sslmode='disable'`
	if got := cfg.Dsn(); got != want {
		t.Errorf("dsn:\ngot  %s\nwant %s", got, want)
	}
}

func TestDurations(t *testing.T) {
	cfg := database.Config{ConnMaxLifetime: "15m", ConnTimeout: "5s"}

	if d := cfg.ConnMaxLifetimeDuration(); d != 15*time.Minute {
		t.Errorf("conn_max_lifetime = %v, want 15m", d)
	}
	if d := cfg.ConnTimeoutDuration(); d != 5*time.Second {
		t.Errorf("conn_timeout = %v, want 5s", d)
	}
}
