package rating

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ratepoint/service-core/internal/apperr"
	"github.com/ratepoint/service-core/internal/auth"
)

// Handler exposes HTTP endpoints for rating operations.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// SubmitRequest is the rating submission payload.
type SubmitRequest struct {
	StoreID string `json:"store_id"`
	Rating  int    `json:"rating"`
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		h.writeError(w, apperr.Unauthenticated(""))
		return
	}
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.Validation("invalid payload"))
		return
	}
	row, err := h.svc.Submit(r.Context(), p.UserID, req.StoreID, req.Rating)
	if err != nil {
		h.logger.Debugw("rating submit failed", "user", p.UserID, "store", req.StoreID, "err", err)
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, row)
}

func (h *Handler) ForStore(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("store_id")
	out, err := h.svc.ForStore(r.Context(), storeID)
	if err != nil {
		h.logger.Warnw("store ratings failed", "store", storeID, "err", err)
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Average(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("id")
	agg, err := h.svc.Average(r.Context(), storeID)
	if err != nil {
		h.logger.Warnw("store average failed", "store", storeID, "err", err)
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, agg)
}

func (h *Handler) ForOwner(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		h.writeError(w, apperr.Unauthenticated(""))
		return
	}
	ownerID := r.PathValue("id")
	out, err := h.svc.ForOwner(r.Context(), ownerID, p.UserID, p.Role)
	if err != nil {
		h.logger.Debugw("owner dashboard failed", "owner", ownerID, "requester", p.UserID, "err", err)
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	h.writeJSON(w, apperr.Status(err), map[string]string{"message": apperr.PublicMessage(err)})
}
