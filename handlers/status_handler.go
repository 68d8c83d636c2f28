// handlers/status_handler.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/propwatch/violationwatch/database"
	"github.com/propwatch/violationwatch/services"
)

// Handlers serves the small status surface exposed while the scheduler runs.
type Handlers struct {
	Store   *database.ViolationStore
	Monitor *services.Monitor
}

// Helper to respond with JSON
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshalling JSON response: %v", err)
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper to respond with an error
func respondWithError(w http.ResponseWriter, code int, message string) {
	log.Printf("API Error %d: %s", code, message)
	respondWithJSON(w, code, map[string]string{"error": message})
}

// HealthHandler reports process and store health.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(); err != nil {
		log.Printf("Health check failed: DB ping error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "database connection error")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// StatusHandler reports the ledger size and the last completed cycle.
func (h *Handlers) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	count, err := h.Store.Count()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to count tracked violations")
		return
	}

	payload := map[string]interface{}{
		"tracked_violations": count,
	}
	if last := h.Monitor.LastRun(); last != nil {
		payload["last_run"] = last
	}
	respondWithJSON(w, http.StatusOK, payload)
}
