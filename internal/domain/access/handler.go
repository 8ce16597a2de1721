package access

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cat-registry/internal/adapters/auth/cookieauth"
	"cat-registry/internal/domain/owners"
	"cat-registry/internal/middleware"
	"cat-registry/internal/platform/logger"
	"cat-registry/internal/platform/metrics"
	"cat-registry/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Owners  *owners.Service
	Cookies *cookieauth.Cookies
	Logger  logger.Logger
	Metrics *metrics.Metrics
}

func RegisterRoutes(r chi.Router, svc *Service, deps HandlerDeps) {
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	r.Post("/login", loginHandler(svc, deps))
	r.Post("/logout", logoutHandler(svc, deps))
	r.Get("/me", meHandler(deps))
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
	Owner     owners.OwnerResponse `json:"owner"`
}

// loginHandler godoc
// @Summary Login
// @Description Abre una sesión. El token viaja en la cookie firmada y también en el body (para Bearer).
// @Tags access
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 401 {string} string "invalid credentials"
// @Router /login [post]
func loginHandler(svc *Service, deps HandlerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		sess, o, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				if deps.Metrics != nil {
					deps.Metrics.LoginFailures.Inc()
				}
				deps.Logger.Info("login rejected", map[string]any{"email": req.Email})
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}
			deps.Logger.Error("login failed", map[string]any{"error": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if deps.Cookies != nil {
			if err := deps.Cookies.Issue(w, r, sess.Token); err != nil {
				deps.Logger.Error("issue session cookie", map[string]any{"error": err})
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		}
		if deps.Metrics != nil {
			deps.Metrics.SessionsCreated.Inc()
		}
		deps.Logger.Debug("login ok", map[string]any{"owner_id": o.ID})

		writeJSON(w, http.StatusOK, loginResponse{
			Token:     sess.Token,
			ExpiresAt: sess.ExpiresAt,
			Owner:     owners.ToResponse(o),
		})
	}
}

// logoutHandler godoc
// @Summary Logout
// @Tags access
// @Success 204
// @Router /logout [post]
func logoutHandler(svc *Service, deps HandlerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.RequestToken(r)
		if deps.Cookies != nil {
			if token == "" {
				token = deps.Cookies.Token(r)
			}
			_ = deps.Cookies.Clear(w, r)
		}
		if err := svc.Logout(r.Context(), token); err != nil {
			deps.Logger.Error("logout failed", map[string]any{"error": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// meHandler godoc
// @Summary Owner de la sesión actual
// @Tags access
// @Produce json
// @Success 200 {object} owners.OwnerResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me [get]
func meHandler(deps HandlerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		o, err := deps.Owners.GetByID(r.Context(), claims.OwnerID)
		if err != nil {
			if errors.Is(err, owners.ErrNotFound) {
				// sesión de un owner ya borrado
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, owners.ToResponse(o))
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
