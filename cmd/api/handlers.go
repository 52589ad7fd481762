package main

import (
	"encoding/json"
	"net/http"
)

// handleIndex describes the API at the root path.
func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Smart Lead Automation API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":  "/api/health",
			"leads":   "/api/leads",
			"process": "/api/leads/process",
			"sync":    "/api/cron/sync",
			"metrics": "/metrics",
		},
	})
}
