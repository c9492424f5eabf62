package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/trackwire/internal/builder"
	"github.com/gyaneshwarpardhi/trackwire/internal/config"
	"github.com/gyaneshwarpardhi/trackwire/internal/event"
	"github.com/gyaneshwarpardhi/trackwire/internal/tracker"
	"github.com/gyaneshwarpardhi/trackwire/internal/wire"
)

const maxBodyBytes = 1 << 20

// Handler holds all HTTP handler dependencies.
type Handler struct {
	tr     *tracker.Tracker
	loader *config.Loader
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(tr *tracker.Tracker, loader *config.Loader) http.Handler {
	h := &Handler{tr: tr, loader: loader, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /v1/events", h.logEvent)
	h.mux.HandleFunc("POST /v1/sessions", h.startSession)
	h.mux.HandleFunc("DELETE /v1/sessions/current", h.endSession)
	h.mux.HandleFunc("POST /v1/optout", h.optOut)
	h.mux.HandleFunc("PUT /v1/user/mpid", h.setMPID)
	h.mux.HandleFunc("PUT /v1/user/attributes/{key}", h.setUserAttribute)
	h.mux.HandleFunc("DELETE /v1/user/attributes/{key}", h.removeUserAttribute)
	h.mux.HandleFunc("POST /v1/bags/{name}", h.addToBag)
	h.mux.HandleFunc("DELETE /v1/bags/{name}", h.removeBag)
	h.mux.HandleFunc("POST /v1/config/reload", h.reloadConfig)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(bodyLimit(maxBodyBytes, h.mux))
}

// POST /v1/events — build, encode and send one event.
func (h *Handler) logEvent(w http.ResponseWriter, r *http.Request) {
	var req tracker.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if req.MessageType == 0 {
		writeError(w, http.StatusBadRequest, "message_type is required")
		return
	}
	dto, err := h.tr.Log(r.Context(), req)
	h.writeDTO(w, dto, err)
}

// POST /v1/sessions — start a session.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	id, dto, err := h.tr.StartSession(r.Context())
	if err != nil && dto == nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id": id,
		"dto":        dto,
	})
}

// DELETE /v1/sessions/current — end the active session.
func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	dto, err := h.tr.EndSession(r.Context())
	if errors.Is(err, builder.ErrNoSession) {
		writeError(w, http.StatusNotFound, "no active session")
		return
	}
	h.writeDTO(w, dto, err)
}

type optOutRequest struct {
	OptOut bool `json:"opt_out"`
}

// POST /v1/optout — toggle tracking and emit an OptOut event.
func (h *Handler) optOut(w http.ResponseWriter, r *http.Request) {
	var req optOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	dto, err := h.tr.SetOptOut(r.Context(), req.OptOut)
	h.writeDTO(w, dto, err)
}

type mpidRequest struct {
	MPID string `json:"mpid"`
}

// PUT /v1/user/mpid — switch the current user.
func (h *Handler) setMPID(w http.ResponseWriter, r *http.Request) {
	var req mpidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if req.MPID == "" {
		writeError(w, http.StatusBadRequest, "mpid is required")
		return
	}
	h.tr.Session().SetMPID(req.MPID)
	w.WriteHeader(http.StatusNoContent)
}

type attributeRequest struct {
	Value interface{} `json:"value"`
}

// PUT /v1/user/attributes/{key}
func (h *Handler) setUserAttribute(w http.ResponseWriter, r *http.Request) {
	var req attributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	h.tr.Session().SetUserAttribute(r.PathValue("key"), req.Value)
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /v1/user/attributes/{key}
func (h *Handler) removeUserAttribute(w http.ResponseWriter, r *http.Request) {
	h.tr.Session().RemoveUserAttribute(r.PathValue("key"))
	w.WriteHeader(http.StatusNoContent)
}

// POST /v1/bags/{name} — add one product to a product bag.
func (h *Handler) addToBag(w http.ResponseWriter, r *http.Request) {
	var p event.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	name := r.PathValue("name")
	h.tr.Session().AddToProductBag(name, p)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bag":      name,
		"products": len(h.tr.Session().ProductBags()[name]),
	})
}

// DELETE /v1/bags/{name}
func (h *Handler) removeBag(w http.ResponseWriter, r *http.Request) {
	if !h.tr.Session().RemoveProductBag(r.PathValue("name")) {
		writeError(w, http.StatusNotFound, "no such product bag")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /v1/config/reload — re-read config from disk.
func (h *Handler) reloadConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.loader.Reload()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded": true,
		"version":  cfg.Version,
	})
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeDTO maps a tracker outcome to a response.
func (h *Handler) writeDTO(w http.ResponseWriter, dto wire.DTO, err error) {
	switch {
	case errors.Is(err, builder.ErrNoSession):
		writeJSON(w, http.StatusOK, map[string]interface{}{"suppressed": true})
	case err != nil && dto == nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	case err != nil:
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{"dto": dto, "error": err.Error()})
	default:
		writeJSON(w, http.StatusOK, dto)
	}
}
