package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/VoidMesh/noise/internal/db"
	"github.com/VoidMesh/noise/internal/field"
	"github.com/VoidMesh/noise/internal/palette"
)

const (
	DefaultSnapshotLimit = 20
	MaxSnapshotLimit     = 100
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ValueResponse struct {
	FieldID string  `json:"field_id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Value   float64 `json:"value"`
}

type Handler struct {
	fields         FieldSource
	regenerator    Regenerator
	snapshots      SnapshotStore
	defaultPalette string
}

func NewHandler(fields FieldSource, regenerator Regenerator, snapshots SnapshotStore, defaultPalette string) *Handler {
	return &Handler{
		fields:         fields,
		regenerator:    regenerator,
		snapshots:      snapshots,
		defaultPalette: defaultPalette,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "voidmesh-noise",
		"version":   "1.0.0",
		"has_field": h.fields.Load() != nil,
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

func (h *Handler) GetField(w http.ResponseWriter, r *http.Request) {
	f, ok := h.latest(w, r)
	if !ok {
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, fieldView(f, r.URL.Query().Get("values") == "true"))
}

func (h *Handler) GetFieldValue(w http.ResponseWriter, r *http.Request) {
	x, err := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid x coordinate", err)
		return
	}

	y, err := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid y coordinate", err)
		return
	}

	f, ok := h.latest(w, r)
	if !ok {
		return
	}

	value, err := f.Nearest(x, y)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "coordinate outside field", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, ValueResponse{FieldID: f.ID, X: x, Y: y, Value: value})
}

func (h *Handler) GetFieldImage(w http.ResponseWriter, r *http.Request) {
	f, ok := h.latest(w, r)
	if !ok {
		return
	}
	h.renderImage(w, r, f)
}

func (h *Handler) RegenerateField(w http.ResponseWriter, r *http.Request) {
	if !h.regenerator.Trigger() {
		h.renderError(w, r, http.StatusTooManyRequests, "regeneration already queued", nil)
		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, map[string]interface{}{
		"status": "queued",
	})
}

func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := int64(DefaultSnapshotLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			h.renderError(w, r, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		limit = min(parsed, MaxSnapshotLimit)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	snapshots, err := h.snapshots.List(ctx, limit)
	if err != nil {
		log.Error("failed to list snapshots", "error", err, "limit", limit)
		h.renderError(w, r, http.StatusInternalServerError, "failed to list snapshots", err)
		return
	}
	if snapshots == nil {
		snapshots = []db.SnapshotSummary{}
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"snapshots": snapshots,
		"limit":     limit,
	})
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	f, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, fieldView(f, r.URL.Query().Get("values") == "true"))
}

func (h *Handler) GetSnapshotImage(w http.ResponseWriter, r *http.Request) {
	f, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}
	h.renderImage(w, r, f)
}

// latest writes a 503 and reports false while nothing has been generated.
func (h *Handler) latest(w http.ResponseWriter, r *http.Request) (*field.Field, bool) {
	f := h.fields.Load()
	if f == nil {
		h.renderError(w, r, http.StatusServiceUnavailable, "no field generated yet", nil)
		return nil, false
	}
	return f, true
}

func (h *Handler) loadSnapshot(w http.ResponseWriter, r *http.Request) (*field.Field, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid snapshot id", err)
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	f, err := h.snapshots.Load(ctx, id)
	if errors.Is(err, db.ErrSnapshotNotFound) {
		h.renderError(w, r, http.StatusNotFound, "snapshot not found", nil)
		return nil, false
	}
	if err != nil {
		log.Error("failed to load snapshot", "error", err, "snapshot_id", id)
		h.renderError(w, r, http.StatusInternalServerError, "failed to load snapshot", err)
		return nil, false
	}
	return f, true
}

func (h *Handler) renderImage(w http.ResponseWriter, r *http.Request, f *field.Field) {
	name := r.URL.Query().Get("palette")
	if name == "" {
		name = h.defaultPalette
	}
	mapper, err := palette.ByName(name)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "unknown palette", err)
		return
	}

	tile := 1
	if raw := r.URL.Query().Get("tile"); raw != "" {
		tile, err = strconv.Atoi(raw)
		if err != nil || tile < 1 || tile > palette.MaxTile {
			h.renderError(w, r, http.StatusBadRequest, "tile must be between 1 and 16", err)
			return
		}
	}
	if palette.FitTile(f.Samples, tile) != tile {
		h.renderError(w, r, http.StatusBadRequest,
			fmt.Sprintf("image would exceed %d pixels per side", palette.MaxImageSide), nil)
		return
	}

	// Encode fully before writing so a failure can still become a JSON error.
	var buf bytes.Buffer
	if err := palette.EncodePNG(&buf, palette.Render(f, mapper, tile)); err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to encode image", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Debug("image write aborted", "error", err, "field_id", f.ID)
	}
}

// fieldView returns a shallow copy of f without its samples unless asked.
func fieldView(f *field.Field, withValues bool) *field.Field {
	view := *f
	if !withValues {
		view.Values = nil
	}
	return &view
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		log.Error("API error", "error", err, "message", message, "status", status)
		// Don't expose internal errors to the client
		if status >= 500 {
			errorResponse.Error = "Internal server error"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}
