package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aria-labs/tinyaria/internal/engine"
	"github.com/aria-labs/tinyaria/internal/predicate"
)

const maxInputBytes = 64 << 10

// Handler holds all HTTP handler dependencies.
type Handler struct {
	eng       *engine.Engine
	rulesPath string
	mux       *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(eng *engine.Engine, rulesPath string) http.Handler {
	h := &Handler{eng: eng, rulesPath: rulesPath, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /v1/respond", h.respond)
	h.mux.HandleFunc("GET /v1/rules", h.listRules)
	h.mux.HandleFunc("POST /v1/rules/reload", h.reloadRules)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

type respondRequest struct {
	Input    string         `json:"input"`
	Bindings map[string]any `json:"bindings"`
}

type respondResponse struct {
	RequestID string          `json:"request_id"`
	Decision  engine.Decision `json:"decision"`
}

// POST /v1/respond — evaluate one input against the active rule table.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request) {
	var req respondRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxInputBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if req.Input == "" {
		writeError(w, http.StatusBadRequest, "input is required")
		return
	}

	d := h.eng.Select(&predicate.Context{Input: req.Input, Bindings: req.Bindings})
	writeJSON(w, http.StatusOK, respondResponse{
		RequestID: uuid.New().String(),
		Decision:  d,
	})
}

// GET /v1/rules — list the compiled rules and effective config targets.
func (h *Handler) listRules(w http.ResponseWriter, r *http.Request) {
	t := h.eng.Table()
	if t == nil {
		writeError(w, http.StatusServiceUnavailable, "no rule table loaded")
		return
	}
	type ruleInfo struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	}
	rules := make([]ruleInfo, 0, len(t.Rules))
	for _, rd := range t.Rules {
		rules = append(rules, ruleInfo{Name: rd.Name, Confidence: rd.Confidence})
	}
	targets := make([]string, 0, len(t.Config))
	for name := range t.Config {
		targets = append(targets, name)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rules":                rules,
		"config_targets":       targets,
		"confidence_threshold": t.Threshold,
		"compiled_at":          t.CompiledAt,
	})
}

// POST /v1/rules/reload — recompile the rule document from disk and swap.
// A failed compile keeps the previous table and reports 422.
func (h *Handler) reloadRules(w http.ResponseWriter, r *http.Request) {
	text, err := os.ReadFile(h.rulesPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	t, err := h.eng.Load(string(text))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reloaded": true,
		"rules":    len(t.Rules),
		"warnings": t.Warnings,
	})
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz — 503 until a rule table has been compiled.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	if !h.eng.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "no rules loaded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
