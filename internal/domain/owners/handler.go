package owners

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cat-registry/internal/middleware"
	"cat-registry/internal/platform/validation"
	"cat-registry/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra el CRUD de owners. Todo requiere admin.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/owners", func(or chi.Router) {
		or.Post("/", createOwnerHandler(svc))
		or.Get("/", listOwnersHandler(svc))
		or.Get("/{ownerID}", getOwnerHandler(svc))
		or.Patch("/{ownerID}", updateOwnerHandler(svc))
		or.Delete("/{ownerID}", deleteOwnerHandler(svc))
	})
}

type createOwnerRequest struct {
	Firstname  string `json:"firstname" validate:"required_without=Surname"`
	Surname    string `json:"surname"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	Permission int    `json:"permission" validate:"omitempty,oneof=1 2"`
	Password   string `json:"password" validate:"required,min=8"`
}

type updateOwnerRequest struct {
	Firstname  *string `json:"firstname"`
	Surname    *string `json:"surname"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	Country    *string `json:"country"`
	Permission *int    `json:"permission" validate:"omitempty,oneof=1 2"`
	Password   *string `json:"password" validate:"omitempty,min=8"`
}

// OwnerResponse es la representación pública (sin password hash).
type OwnerResponse struct {
	ID         int64     `json:"id"`
	Firstname  string    `json:"firstname"`
	Surname    string    `json:"surname"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	Country    string    `json:"country"`
	Permission int       `json:"permission"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// createOwnerHandler godoc
// @Summary Crear owner
// @Description Da de alta un owner (usuario). Solo admin. permission: 1 admin, 2 owner (default 2).
// @Tags owners
// @Accept json
// @Produce json
// @Param payload body createOwnerRequest true "Datos del owner"
// @Success 201 {object} OwnerResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "email already registered"
// @Router /owners [post]
func createOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireAdmin(w, r); !ok {
			return
		}

		var req createOwnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		o, err := svc.Create(r.Context(), CreateInput{
			Firstname:  req.Firstname,
			Surname:    req.Surname,
			Email:      req.Email,
			Phone:      req.Phone,
			Address:    req.Address,
			City:       req.City,
			Country:    req.Country,
			Permission: auth.Permission(req.Permission),
			Password:   req.Password,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ToResponse(o))
	}
}

// listOwnersHandler godoc
// @Summary Listar owners
// @Tags owners
// @Produce json
// @Param q query string false "Búsqueda en nombre/email"
// @Param permission query int false "1 admin, 2 owner"
// @Param limit query int false "1-500, default 100"
// @Param offset query int false "Offset"
// @Success 200 {array} OwnerResponse
// @Router /owners [get]
func listOwnersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireAdmin(w, r); !ok {
			return
		}

		q := r.URL.Query()
		filter := ListFilter{Query: q.Get("q")}
		if v := q.Get("permission"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || !auth.Permission(n).Valid() {
				http.Error(w, "permission must be 1 or 2", http.StatusBadRequest)
				return
			}
			filter.Permission = auth.Permission(n)
		}
		filter.Limit, _ = strconv.Atoi(q.Get("limit"))
		filter.Offset, _ = strconv.Atoi(q.Get("offset"))

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]OwnerResponse, 0, len(items))
		for _, o := range items {
			out = append(out, ToResponse(o))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getOwnerHandler godoc
// @Summary Ver owner
// @Tags owners
// @Produce json
// @Param ownerID path int true "Owner ID"
// @Success 200 {object} OwnerResponse
// @Failure 404 {string} string "owner not found"
// @Router /owners/{ownerID} [get]
func getOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireAdmin(w, r); !ok {
			return
		}
		id, ok := ownerIDParam(w, r)
		if !ok {
			return
		}

		o, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(o))
	}
}

// updateOwnerHandler godoc
// @Summary Editar owner
// @Description Solo admin. Cambiar permission o password cierra las sesiones del owner.
// @Tags owners
// @Accept json
// @Produce json
// @Param ownerID path int true "Owner ID"
// @Param payload body updateOwnerRequest true "Campos a modificar"
// @Success 200 {object} OwnerResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "owner not found"
// @Failure 409 {string} string "email already registered"
// @Router /owners/{ownerID} [patch]
func updateOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireAdmin(w, r); !ok {
			return
		}
		id, ok := ownerIDParam(w, r)
		if !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateOwnerRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Firstname: req.Firstname,
			Surname:   req.Surname,
			Email:     req.Email,
			Phone:     req.Phone,
			Address:   req.Address,
			City:      req.City,
			Country:   req.Country,
			Password:  req.Password,
		}
		if req.Permission != nil {
			p := auth.Permission(*req.Permission)
			in.Permission = &p
		}

		o, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(o))
	}
}

// deleteOwnerHandler godoc
// @Summary Borrar owner
// @Description Solo admin. Falla con 409 si todavía tiene gatos.
// @Tags owners
// @Param ownerID path int true "Owner ID"
// @Success 204
// @Failure 404 {string} string "owner not found"
// @Failure 409 {string} string "owner still has cats"
// @Router /owners/{ownerID} [delete]
func deleteOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireAdmin(w, r); !ok {
			return
		}
		id, ok := ownerIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ToResponse(o Owner) OwnerResponse {
	return OwnerResponse{
		ID:         o.ID,
		Firstname:  o.Firstname,
		Surname:    o.Surname,
		Email:      o.Email,
		Phone:      o.Phone,
		Address:    o.Address,
		City:       o.City,
		Country:    o.Country,
		Permission: int(o.Permission),
		Role:       o.Permission.String(),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func ownerIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "ownerID"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "owner not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "owner not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
