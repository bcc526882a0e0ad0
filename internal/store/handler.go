package store

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ratepoint/service-core/internal/apperr"
	"github.com/ratepoint/service-core/internal/store/repo"
)

// Handler exposes HTTP endpoints for store operations.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// CreateRequest is the admin store-creation payload.
type CreateRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	OwnerID string `json:"owner_id"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.Validation("invalid payload"))
		return
	}
	st, err := h.svc.Add(r.Context(), AddInput(req))
	if err != nil {
		h.logger.Debugw("store create failed", "err", err)
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, st)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repo.Filter{
		Name:    q.Get("name"),
		Address: q.Get("address"),
		OwnerID: q.Get("owner_id"),
	}
	stores, err := h.svc.List(r.Context(), f, q.Get("sortBy"), q.Get("order"))
	if err != nil {
		h.logger.Warnw("list stores failed", "err", err)
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stores)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	h.writeJSON(w, apperr.Status(err), map[string]string{"message": apperr.PublicMessage(err)})
}
