package export

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"cat-registry/internal/domain/cats"
	"cat-registry/internal/domain/pedigree"
	"cat-registry/internal/middleware"
	"cat-registry/internal/platform/logger"
	"cat-registry/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

type HandlerOptions struct {
	Logger  logger.Logger
	Metrics *metrics.Metrics
}

func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions) {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	r.Get("/cats/export.xlsx", catsXLSXHandler(svc, opts))
	r.Get("/cats/{catID}/pedigree.pdf", pedigreePDFHandler(svc, opts))
}

// catsXLSXHandler godoc
// @Summary Exportar gatos a XLSX
// @Description Mismos filtros y scoping que GET /cats.
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param q query string false "Nombre, callname o microchip"
// @Param gender query string false "Male | Female"
// @Param status query string false "Estado"
// @Success 200 {file} file
// @Router /cats/export.xlsx [get]
func catsXLSXHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		filter, err := cats.ParseListFilter(r.URL.Query())
		if err != nil {
			cats.WriteError(w, err)
			return
		}

		// Se arma en memoria para no mandar un archivo a medias si algo falla.
		var buf bytes.Buffer
		n, err := svc.WriteCatsXLSX(r.Context(), &buf, claims, filter)
		if err != nil {
			writeError(w, opts.Logger, "xlsx export failed", err)
			return
		}
		opts.Logger.Debug("xlsx export", map[string]any{"rows": n, "owner_id": claims.OwnerID})

		writeFile(w, contentTypeXLSX, "cats.xlsx", buf.Bytes())
	}
}

// pedigreePDFHandler godoc
// @Summary Pedigree en PDF
// @Description Perfil del gato y tabla de 4 generaciones.
// @Tags export
// @Produce application/pdf
// @Param catID path int true "Cat ID"
// @Success 200 {file} file
// @Header 200 {integer} X-Pedigree-Generations "Columnas de la tabla"
// @Failure 404 {string} string "cat not found"
// @Router /cats/{catID}/pedigree.pdf [get]
func pedigreePDFHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		id, ok := cats.CatIDParam(w, r)
		if !ok {
			return
		}

		var buf bytes.Buffer
		tree, err := svc.WritePedigreePDF(r.Context(), &buf, claims, id)
		if err != nil {
			writeError(w, opts.Logger, "pdf export failed", err)
			return
		}
		pedigree.Report(opts.Logger, opts.Metrics, id, tree)

		w.Header().Set("X-Pedigree-Generations", strconv.Itoa(svc.Depth()+1))
		writeFile(w, contentTypePDF, "pedigree-"+strconv.FormatInt(id, 10)+".pdf", buf.Bytes())
	}
}

func writeFile(w http.ResponseWriter, contentType, name string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, log logger.Logger, msg string, err error) {
	if errors.Is(err, cats.ErrInvalidInput) || errors.Is(err, cats.ErrNotFound) || errors.Is(err, cats.ErrForbidden) {
		cats.WriteError(w, err)
		return
	}
	log.Error(msg, map[string]any{"error": err})
	http.Error(w, "internal error", http.StatusInternalServerError)
}
