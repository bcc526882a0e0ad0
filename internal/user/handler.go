package user

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ratepoint/service-core/internal/apperr"
	"github.com/ratepoint/service-core/internal/auth"
	"github.com/ratepoint/service-core/internal/user/entity"
	"github.com/ratepoint/service-core/internal/user/repo"
)

// Handler exposes HTTP endpoints for account operations.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// SignupRequest is the request body for signup and admin user creation.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

// SignupResponse carries the created account plus a bearer token so the
// caller is logged in immediately.
type SignupResponse struct {
	Token string      `json:"token"`
	User  entity.View `json:"user"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.Validation("invalid payload"))
		return
	}
	u, err := h.svc.Signup(r.Context(), SignupInput(req))
	if err != nil {
		h.logger.Debugw("signup failed", "err", err)
		h.writeError(w, err)
		return
	}
	token, err := h.svc.IssueToken(u)
	if err != nil {
		h.logger.Warnw("token issue after signup failed", "err", err)
		h.writeError(w, apperr.Storage(err))
		return
	}
	h.writeJSON(w, http.StatusCreated, SignupResponse{Token: token, User: u.Public()})
}

// AdminCreate is the admin-gated user creation route; same validation as
// signup but no token in the response.
func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.Validation("invalid payload"))
		return
	}
	u, err := h.svc.Signup(r.Context(), SignupInput(req))
	if err != nil {
		h.logger.Debugw("admin user create failed", "err", err)
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, u.Public())
}

// LoginRequest login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  entity.View `json:"user"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.Validation("invalid payload"))
		return
	}
	token, u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debugw("login failed", "email", req.Email, "err", err)
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: u.Public()})
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		h.writeError(w, apperr.Unauthenticated(""))
		return
	}
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.Validation("invalid payload"))
		return
	}
	targetID := r.PathValue("id")
	if err := h.svc.ChangePassword(r.Context(), targetID, req.Password, p.UserID, p.Role); err != nil {
		h.logger.Debugw("password change failed", "target", targetID, "err", err)
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repo.Filter{
		Name:    q.Get("name"),
		Email:   q.Get("email"),
		Address: q.Get("address"),
		Role:    q.Get("role"),
	}
	views, err := h.svc.List(r.Context(), f, q.Get("sortBy"), q.Get("order"))
	if err != nil {
		h.logger.Warnw("list users failed", "err", err)
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	h.writeJSON(w, apperr.Status(err), map[string]string{"message": apperr.PublicMessage(err)})
}
