package cats

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cat-registry/internal/middleware"
	"cat-registry/internal/platform/patch"
	"cat-registry/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/cats", func(cr chi.Router) {
		// Alta/edición/baja: admin
		cr.Post("/", createCatHandler(svc))
		cr.Patch("/{catID}", updateCatHandler(svc))
		cr.Delete("/{catID}", deleteCatHandler(svc))

		// Lectura: admin ve todo, owner solo lo suyo
		cr.Get("/", listCatsHandler(svc))
		cr.Get("/{catID}", getCatHandler(svc))
		cr.Get("/{catID}/offspring", listOffspringHandler(svc))
	})
}

type createCatRequest struct {
	Firstname string `json:"firstname" validate:"required_without=Surname"`
	Surname   string `json:"surname"`
	Callname  string `json:"callname"`
	Gender    string `json:"gender" validate:"required,oneof=Male Female"`
	Birthday  string `json:"birthday" validate:"required,datetime=2006-01-02"` // YYYY-MM-DD
	Microchip string `json:"microchip"`

	DamID     *int64 `json:"dam_id" validate:"omitempty,gt=0"`
	SireID    *int64 `json:"sire_id" validate:"omitempty,gt=0"`
	BreederID *int64 `json:"breeder_id" validate:"omitempty,gt=0"`
	OwnerID   int64  `json:"owner_id" validate:"required,gt=0"`

	Colour             string   `json:"colour"`
	LitterCode         string   `json:"litter_code"`
	Titles             string   `json:"titles"`
	Status             string   `json:"status" validate:"omitempty,oneof=active retired sold deceased"`
	Neutered           bool     `json:"neutered"`
	HCMTested          bool     `json:"hcm_tested"`
	PKDTested          bool     `json:"pkd_tested"`
	BirthWeightGrams   *int     `json:"birth_weight_g" validate:"omitempty,gt=0"`
	CurrentWeightGrams *int     `json:"current_weight_g" validate:"omitempty,gt=0"`
	Notes              string   `json:"notes"`
	PhotoPaths         []string `json:"photo_paths"`
}

// updateCatRequest: punteros = no tocar si no vienen; Nullable para los que se pueden limpiar.
type updateCatRequest struct {
	Firstname *string `json:"firstname"`
	Surname   *string `json:"surname"`
	Callname  *string `json:"callname"`
	Gender    *string `json:"gender" validate:"omitempty,oneof=Male Female"`
	Birthday  *string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Microchip *string `json:"microchip"`

	DamID     patch.Nullable[int64] `json:"dam_id" swaggertype:"integer"`
	SireID    patch.Nullable[int64] `json:"sire_id" swaggertype:"integer"`
	BreederID patch.Nullable[int64] `json:"breeder_id" swaggertype:"integer"`
	OwnerID   *int64                `json:"owner_id" validate:"omitempty,gt=0"`

	Colour             *string             `json:"colour"`
	LitterCode         *string             `json:"litter_code"`
	Titles             *string             `json:"titles"`
	Status             *string             `json:"status" validate:"omitempty,oneof=active retired sold deceased"`
	Neutered           *bool               `json:"neutered"`
	HCMTested          *bool               `json:"hcm_tested"`
	PKDTested          *bool               `json:"pkd_tested"`
	BirthWeightGrams   patch.Nullable[int] `json:"birth_weight_g" swaggertype:"integer"`
	CurrentWeightGrams patch.Nullable[int] `json:"current_weight_g" swaggertype:"integer"`
	Notes              *string             `json:"notes"`
	PhotoPaths         *[]string           `json:"photo_paths"`
}

type CatResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Firstname string `json:"firstname"`
	Surname   string `json:"surname"`
	Callname  string `json:"callname"`
	Gender    Gender `json:"gender"`
	Birthday  string `json:"birthday"`
	Microchip string `json:"microchip"`

	DamID     *int64 `json:"dam_id"`
	SireID    *int64 `json:"sire_id"`
	BreederID *int64 `json:"breeder_id"`
	OwnerID   int64  `json:"owner_id"`

	Colour             string   `json:"colour"`
	LitterCode         string   `json:"litter_code"`
	Titles             string   `json:"titles"`
	Status             Status   `json:"status"`
	Neutered           bool     `json:"neutered"`
	HCMTested          bool     `json:"hcm_tested"`
	PKDTested          bool     `json:"pkd_tested"`
	BirthWeightGrams   *int     `json:"birth_weight_g,omitempty"`
	CurrentWeightGrams *int     `json:"current_weight_g,omitempty"`
	Notes              string   `json:"notes"`
	PhotoPaths         []string `json:"photo_paths"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createCatHandler godoc
// @Summary Registrar gato
// @Description Solo admin. dam_id debe ser hembra y sire_id macho.
// @Tags cats
// @Accept json
// @Produce json
// @Param payload body createCatRequest true "Datos del gato"
// @Success 201 {object} CatResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 403 {string} string "forbidden"
// @Failure 422 {string} string "invalid parent"
// @Router /cats [post]
func createCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireAdmin(w, r); !ok {
			return
		}

		var req createCatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// validator ya verificó el formato
		birthday, _ := time.Parse(dateLayout, req.Birthday)

		c, err := svc.Create(r.Context(), CreateInput{
			Firstname:          req.Firstname,
			Surname:            req.Surname,
			Callname:           req.Callname,
			Gender:             Gender(req.Gender),
			Birthday:           birthday,
			Microchip:          req.Microchip,
			DamID:              req.DamID,
			SireID:             req.SireID,
			BreederID:          req.BreederID,
			OwnerID:            req.OwnerID,
			Colour:             req.Colour,
			LitterCode:         req.LitterCode,
			Titles:             req.Titles,
			Status:             Status(req.Status),
			Neutered:           req.Neutered,
			HCMTested:          req.HCMTested,
			PKDTested:          req.PKDTested,
			BirthWeightGrams:   req.BirthWeightGrams,
			CurrentWeightGrams: req.CurrentWeightGrams,
			Notes:              req.Notes,
			PhotoPaths:         req.PhotoPaths,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, ToResponse(c))
	}
}

// listCatsHandler godoc
// @Summary Listar gatos
// @Description Admin ve todos; owner solo los propios (owner_id se ignora).
// @Tags cats
// @Produce json
// @Param q query string false "Nombre, callname o microchip"
// @Param gender query string false "Male | Female"
// @Param status query string false "active | retired | sold | deceased"
// @Param owner_id query int false "Owner"
// @Param breeder_id query int false "Breeder"
// @Param dam_id query int false "Madre"
// @Param sire_id query int false "Padre"
// @Param born_from query string false "YYYY-MM-DD"
// @Param born_to query string false "YYYY-MM-DD"
// @Param limit query int false "1-500, default 100"
// @Param offset query int false "Offset"
// @Success 200 {array} CatResponse
// @Failure 401 {string} string "unauthorized"
// @Router /cats [get]
func listCatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}

		filter, err := ParseListFilter(r.URL.Query())
		if err != nil {
			writeError(w, err)
			return
		}

		items, err := svc.List(r.Context(), claims, filter)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(items))
	}
}

// getCatHandler godoc
// @Summary Perfil de gato
// @Tags cats
// @Produce json
// @Param catID path int true "Cat ID"
// @Success 200 {object} CatResponse
// @Failure 404 {string} string "cat not found"
// @Router /cats/{catID} [get]
func getCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		id, ok := CatIDParam(w, r)
		if !ok {
			return
		}

		c, err := svc.GetVisible(r.Context(), claims, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(c))
	}
}

// updateCatHandler godoc
// @Summary Editar gato
// @Description Solo admin. Campos ausentes no se tocan; dam_id/sire_id/breeder_id en null se limpian.
// @Tags cats
// @Accept json
// @Produce json
// @Param catID path int true "Cat ID"
// @Param payload body updateCatRequest true "Campos a modificar"
// @Success 200 {object} CatResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "cat not found"
// @Failure 422 {string} string "invalid parent"
// @Router /cats/{catID} [patch]
func updateCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireAdmin(w, r); !ok {
			return
		}
		id, ok := CatIDParam(w, r)
		if !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateCatRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Firstname:          req.Firstname,
			Surname:            req.Surname,
			Callname:           req.Callname,
			Microchip:          req.Microchip,
			DamID:              req.DamID,
			SireID:             req.SireID,
			BreederID:          req.BreederID,
			OwnerID:            req.OwnerID,
			Colour:             req.Colour,
			LitterCode:         req.LitterCode,
			Titles:             req.Titles,
			Neutered:           req.Neutered,
			HCMTested:          req.HCMTested,
			PKDTested:          req.PKDTested,
			BirthWeightGrams:   req.BirthWeightGrams,
			CurrentWeightGrams: req.CurrentWeightGrams,
			Notes:              req.Notes,
			PhotoPaths:         req.PhotoPaths,
		}
		if req.Gender != nil {
			g := Gender(*req.Gender)
			in.Gender = &g
		}
		if req.Status != nil {
			st := Status(*req.Status)
			in.Status = &st
		}
		if req.Birthday != nil {
			t, _ := time.Parse(dateLayout, *req.Birthday)
			in.Birthday = &t
		}

		c, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(c))
	}
}

// deleteCatHandler godoc
// @Summary Borrar gato
// @Description Solo admin. Los hijos quedan sin ese dam/sire.
// @Tags cats
// @Param catID path int true "Cat ID"
// @Success 204
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "cat not found"
// @Router /cats/{catID} [delete]
func deleteCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireAdmin(w, r); !ok {
			return
		}
		id, ok := CatIDParam(w, r)
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

// listOffspringHandler godoc
// @Summary Hijos de un gato
// @Tags cats
// @Produce json
// @Param catID path int true "Cat ID"
// @Success 200 {array} CatResponse
// @Router /cats/{catID}/offspring [get]
func listOffspringHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		id, ok := CatIDParam(w, r)
		if !ok {
			return
		}

		items, err := svc.ListOffspring(r.Context(), claims, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(items))
	}
}

func ToResponse(c Cat) CatResponse {
	paths := c.PhotoPaths
	if paths == nil {
		paths = []string{}
	}
	return CatResponse{
		ID:                 c.ID,
		Name:               c.DisplayName(),
		Firstname:          c.Firstname,
		Surname:            c.Surname,
		Callname:           c.Callname,
		Gender:             c.Gender,
		Birthday:           c.Birthday.Format(dateLayout),
		Microchip:          c.Microchip,
		DamID:              c.DamID,
		SireID:             c.SireID,
		BreederID:          c.BreederID,
		OwnerID:            c.OwnerID,
		Colour:             c.Colour,
		LitterCode:         c.LitterCode,
		Titles:             c.Titles,
		Status:             c.Status,
		Neutered:           c.Neutered,
		HCMTested:          c.HCMTested,
		PKDTested:          c.PKDTested,
		BirthWeightGrams:   c.BirthWeightGrams,
		CurrentWeightGrams: c.CurrentWeightGrams,
		Notes:              c.Notes,
		PhotoPaths:         paths,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func toResponses(items []Cat) []CatResponse {
	out := make([]CatResponse, 0, len(items))
	for _, c := range items {
		out = append(out, ToResponse(c))
	}
	return out
}

// CatIDParam lee {catID}; inválido => 404. Lo comparten pedigree y export.
func CatIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "catID"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "cat not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// WriteError mapea errores del dominio a status HTTP.
func WriteError(w http.ResponseWriter, err error) { writeError(w, err) }

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidParent):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "cat not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
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
