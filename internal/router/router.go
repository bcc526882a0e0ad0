package router

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/ratepoint/service-core/internal/auth"
	"github.com/ratepoint/service-core/internal/rating"
	ratingrepo "github.com/ratepoint/service-core/internal/rating/repo"
	"github.com/ratepoint/service-core/internal/store"
	storerepo "github.com/ratepoint/service-core/internal/store/repo"
	"github.com/ratepoint/service-core/internal/user"
	userrepo "github.com/ratepoint/service-core/internal/user/repo"
)

// RegisterRoutes mounts HTTP handlers using the standard library's
// http.ServeMux. Role gates follow the single IsAuthorized policy: admin
// passes every gate, everyone else needs the listed role.
func RegisterRoutes(logger *zap.SugaredLogger, db *sqlx.DB, issuer *auth.Issuer) http.Handler {
	mux := http.NewServeMux()

	userHandler := user.NewHandler(user.NewService(userrepo.NewUserRepo(db), nil, issuer), logger)
	storeHandler := store.NewHandler(store.NewService(storerepo.NewStoreRepo(db)), logger)
	ratingHandler := rating.NewHandler(rating.NewService(ratingrepo.NewRatingRepo(db)), logger)

	authed := auth.Require(issuer)
	adminOnly := auth.Require(issuer, auth.RoleAdmin)
	ownerOnly := auth.Require(issuer, auth.RoleStoreOwner)

	// health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// public
	mux.HandleFunc("POST /signup", userHandler.Signup)
	mux.HandleFunc("POST /login", userHandler.Login)
	mux.HandleFunc("GET /ratings/{store_id}", ratingHandler.ForStore)
	mux.HandleFunc("GET /stores/{id}/average-rating", ratingHandler.Average)

	// any authenticated user
	mux.Handle("PUT /users/{id}/password", authed(http.HandlerFunc(userHandler.ChangePassword)))
	mux.Handle("GET /stores", authed(http.HandlerFunc(storeHandler.List)))
	mux.Handle("POST /ratings", authed(http.HandlerFunc(ratingHandler.Submit)))

	// admin
	mux.Handle("POST /users", adminOnly(http.HandlerFunc(userHandler.AdminCreate)))
	mux.Handle("GET /users", adminOnly(http.HandlerFunc(userHandler.List)))
	mux.Handle("POST /stores", adminOnly(http.HandlerFunc(storeHandler.Create)))

	// store owner dashboard (admin passes via the global override)
	mux.Handle("GET /owner/{id}/ratings", ownerOnly(http.HandlerFunc(ratingHandler.ForOwner)))

	// wrap with request id, then security headers, then request logging
	handler := LoggingMiddleware(logger)(SecurityHeadersMiddleware()(RequestIDMiddleware()(mux)))
	return handler
}
