package infrastructure_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/JaimeStill/menucatch/internal/config"
	"github.com/JaimeStill/menucatch/internal/infrastructure"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggingConfig
		wantDebug bool
		wantJSON  bool
	}{
		{"text info", config.LoggingConfig{Level: "info", Format: "text"}, false, false},
		{"json debug", config.LoggingConfig{Level: "debug", Format: "json"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if err := cfg.Finalize(); err != nil {
				t.Fatalf("Finalize: %v", err)
			}

			var buf bytes.Buffer
			logger := infrastructure.NewLogger(&cfg, &buf)
			logger.Debug("hypotheses ranked", "fragment", "라떼")
			logger.Info("batch resolved", "items", 3)

			out := buf.String()
			if got := strings.Contains(out, "hypotheses ranked"); got != tt.wantDebug {
				t.Errorf("debug record written = %v, want %v", got, tt.wantDebug)
			}

			lines := strings.Split(strings.TrimSpace(out), "\n")
			last := lines[len(lines)-1]
			var entry map[string]any
			isJSON := json.Unmarshal([]byte(last), &entry) == nil
			if isJSON != tt.wantJSON {
				t.Errorf("json output = %v, want %v: %s", isJSON, tt.wantJSON, last)
			}
		})
	}
}
