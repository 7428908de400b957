package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *routerHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleState returns the full unfogged state. Spectator use only; do
// not feed this to agents.
func (h *routerHandlers) handleState(w http.ResponseWriter, r *http.Request) {
	obs, info := h.engine.Snapshot()
	if obs == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no active match"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"observation": obs,
		"info":        info,
	})
}

// handlePlayerState returns one player's fogged observation.
func (h *routerHandlers) handlePlayerState(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 0 || id > 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "player id must be 0 or 1"})
		return
	}

	obs := h.engine.PlayerObservation(id)
	if obs == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no active match"})
		return
	}
	writeJSON(w, http.StatusOK, obs)
}

// handleMatchSummary returns the lightweight match header.
func (h *routerHandlers) handleMatchSummary(w http.ResponseWriter, r *http.Request) {
	terminated, winner := h.engine.Terminated()
	resp := map[string]interface{}{
		"turn":       h.engine.Turn(),
		"seed":       h.engine.Seed(),
		"terminated": terminated,
	}
	if terminated {
		resp["winner"] = winner
	}
	writeJSON(w, http.StatusOK, resp)
}
