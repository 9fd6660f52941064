package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/menucatch/pkg/lifecycle"
)

type healthReport struct {
	Status string          `json:"status"`
	Checks map[string]bool `json:"checks,omitempty"`
}

func respondHealth(w http.ResponseWriter, code int, report healthReport) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(report)
}

// liveness answers as long as the process serves requests.
func liveness(w http.ResponseWriter, _ *http.Request) {
	respondHealth(w, http.StatusOK, healthReport{Status: "ok"})
}

// readiness reports 503 until startup completes and every tracked
// subsystem is ready. The body lists each check either way.
func readiness(lc *lifecycle.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		report := healthReport{Status: "ready", Checks: lc.Status()}
		code := http.StatusOK
		if !lc.Ready() {
			report.Status = "not ready"
			code = http.StatusServiceUnavailable
		}
		respondHealth(w, code, report)
	}
}
