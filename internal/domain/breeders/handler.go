package breeders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cat-registry/internal/middleware"
	"cat-registry/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra el CRUD de breeders (solo admin).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/breeders", func(br chi.Router) {
		br.Post("/", createBreederHandler(svc))
		br.Get("/", listBreedersHandler(svc))
		br.Get("/{breederID}", getBreederHandler(svc))
		br.Patch("/{breederID}", updateBreederHandler(svc))
		br.Delete("/{breederID}", deleteBreederHandler(svc))
	})
}

type createBreederRequest struct {
	Name        string `json:"name" validate:"required"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Website     string `json:"website" validate:"omitempty,url"`
	Notes       string `json:"notes"`
}

type updateBreederRequest struct {
	Name        *string `json:"name"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Country     *string `json:"country"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Notes       *string `json:"notes"`
}

type BreederResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Website     string    `json:"website"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// createBreederHandler godoc
// @Summary Crear breeder
// @Tags breeders
// @Accept json
// @Produce json
// @Param payload body createBreederRequest true "Datos del criadero"
// @Success 201 {object} BreederResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 403 {string} string "forbidden"
// @Router /breeders [post]
func createBreederHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireAdmin(w, r); !ok {
			return
		}

		var req createBreederRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		b, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toResponse(b))
	}
}

// listBreedersHandler godoc
// @Summary Listar breeders
// @Tags breeders
// @Produce json
// @Param q query string false "Nombre, contacto o email"
// @Param country query string false "País"
// @Param limit query int false "1-500, default 100"
// @Param offset query int false "Offset"
// @Success 200 {array} BreederResponse
// @Router /breeders [get]
func listBreedersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireAdmin(w, r); !ok {
			return
		}

		q := r.URL.Query()
		filter := ListFilter{Query: q.Get("q"), Country: q.Get("country")}
		filter.Limit, _ = strconv.Atoi(q.Get("limit"))
		filter.Offset, _ = strconv.Atoi(q.Get("offset"))

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]BreederResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getBreederHandler godoc
// @Summary Ver breeder
// @Tags breeders
// @Produce json
// @Param breederID path int true "Breeder ID"
// @Success 200 {object} BreederResponse
// @Failure 404 {string} string "breeder not found"
// @Router /breeders/{breederID} [get]
func getBreederHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireAdmin(w, r); !ok {
			return
		}
		id, ok := breederIDParam(w, r)
		if !ok {
			return
		}

		b, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(b))
	}
}

// updateBreederHandler godoc
// @Summary Editar breeder
// @Tags breeders
// @Accept json
// @Produce json
// @Param breederID path int true "Breeder ID"
// @Param payload body updateBreederRequest true "Campos a modificar"
// @Success 200 {object} BreederResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "breeder not found"
// @Router /breeders/{breederID} [patch]
func updateBreederHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireAdmin(w, r); !ok {
			return
		}
		id, ok := breederIDParam(w, r)
		if !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateBreederRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		b, err := svc.Update(r.Context(), id, UpdateInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(b))
	}
}

// deleteBreederHandler godoc
// @Summary Borrar breeder
// @Description Solo admin. Los gatos del criadero quedan sin breeder.
// @Tags breeders
// @Param breederID path int true "Breeder ID"
// @Success 204
// @Failure 404 {string} string "breeder not found"
// @Router /breeders/{breederID} [delete]
func deleteBreederHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireAdmin(w, r); !ok {
			return
		}
		id, ok := breederIDParam(w, r)
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

func toResponse(b Breeder) BreederResponse {
	return BreederResponse{
		ID:          b.ID,
		Name:        b.Name,
		ContactName: b.ContactName,
		Email:       b.Email,
		Phone:       b.Phone,
		Address:     b.Address,
		City:        b.City,
		Country:     b.Country,
		Website:     b.Website,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func breederIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "breederID"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "breeder not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "breeder not found", http.StatusNotFound)
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
