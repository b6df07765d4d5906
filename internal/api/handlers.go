package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wesleyorama2/comparedemo/internal/loadgen"
)

// LoadHandler handles the load control routes.
type LoadHandler struct {
	gen *loadgen.Generator
}

// NewLoadHandler creates a new load handler.
func NewLoadHandler(gen *loadgen.Generator) *LoadHandler {
	return &LoadHandler{gen: gen}
}

// Start handles POST /load/start/{tier}
func (h *LoadHandler) Start(w http.ResponseWriter, r *http.Request) {
	tier, err := loadgen.ParseTier(chi.URLParam(r, "tier"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.gen.Active() {
		writeError(w, http.StatusConflict, "load is already running, stop it first")
		return
	}

	q := r.URL.Query()
	if q.Has("user_id") || q.Has("product_id") {
		h.gen.SetOrderForm(loadgen.OrderForm{
			UserID:    q.Get("user_id"),
			ProductID: q.Get("product_id"),
		})
	}

	if err := h.gen.Start(tier); err != nil {
		if errors.Is(err, loadgen.ErrAlreadyRunning) {
			writeError(w, http.StatusConflict, "load is already running, stop it first")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, h.gen.Snapshot())
}

// Stop handles POST /load/stop
func (h *LoadHandler) Stop(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"stopped": h.gen.Stop()})
}

// Status handles GET /load/status
func (h *LoadHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.gen.Snapshot())
}

// Log handles GET /load/log
func (h *LoadHandler) Log(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries":  h.gen.Log().Entries(),
		"capacity": h.gen.Log().Cap(),
	})
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
