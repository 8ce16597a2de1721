package pedigree

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"cat-registry/internal/domain/cats"
	"cat-registry/internal/middleware"
	"cat-registry/internal/platform/logger"
	"cat-registry/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

// MaxRequestDepth es el tope de ?depth= (2^7-1 lookups como mucho).
const MaxRequestDepth = 6

type HandlerOptions struct {
	DefaultDepth int
	Logger       logger.Logger
	Metrics      *metrics.Metrics
}

func RegisterRoutes(r chi.Router, resolver *Resolver, catsSvc *cats.Service, opts HandlerOptions) {
	if opts.DefaultDepth < 0 || opts.DefaultDepth > MaxRequestDepth {
		opts.DefaultDepth = DefaultMaxDepth
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	r.Get("/cats/{catID}/pedigree", treeHandler(resolver, catsSvc, opts))
	r.Get("/cats/{catID}/pedigree/generations", generationsHandler(resolver, catsSvc, opts))
}

type summaryResponse struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Callname  string      `json:"callname,omitempty"`
	Gender    cats.Gender `json:"gender"`
	Birthday  string      `json:"birthday"`
	Microchip string      `json:"microchip,omitempty"`
	Profile   string      `json:"profile"` // ruta del perfil, para navegar desde la UI
}

// nodeResponse es la forma anidada {cat, dam, sire} que consume la vista de árbol.
type nodeResponse struct {
	Cat  summaryResponse `json:"cat"`
	Dam  *nodeResponse   `json:"dam"`
	Sire *nodeResponse   `json:"sire"`
}

type issueResponse struct {
	Kind  IssueKind       `json:"kind"`
	CatID int64           `json:"cat_id"`
	Role  cats.ParentRole `json:"role"`
	RefID int64           `json:"ref_id"`
}

type treeResponse struct {
	Depth  int             `json:"depth"`
	Tree   *nodeResponse   `json:"tree"`
	Issues []issueResponse `json:"issues"`
}

type entryResponse struct {
	ID       int64       `json:"id"`
	Slot     int         `json:"slot"`
	Name     string      `json:"name"`
	Gender   cats.Gender `json:"gender"`
	Birthday string      `json:"birthday"`
}

type generationResponse struct {
	Generation int             `json:"generation"`
	Cats       []entryResponse `json:"cats"`
}

type generationsResponse struct {
	Depth       int                  `json:"depth"`
	Generations []generationResponse `json:"generations"`
	Issues      []issueResponse      `json:"issues"`
}

// treeHandler godoc
// @Summary Árbol genealógico
// @Description Ancestros hasta depth generaciones (0-6, default 2). Referencias rotas o ciclos se listan en issues.
// @Tags pedigree
// @Produce json
// @Param catID path int true "Cat ID"
// @Param depth query int false "Generaciones"
// @Success 200 {object} treeResponse
// @Failure 400 {string} string "invalid depth"
// @Failure 404 {string} string "cat not found"
// @Router /cats/{catID}/pedigree [get]
func treeHandler(resolver *Resolver, catsSvc *cats.Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tree, depth, ok := resolveForRequest(w, r, resolver, catsSvc, opts)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, treeResponse{
			Depth:  depth,
			Tree:   toNodeResponse(tree.Root),
			Issues: toIssueResponses(tree.Issues),
		})
	}
}

// generationsHandler godoc
// @Summary Pedigree por generación
// @Description Generación 0 = el gato; dentro de cada una, dam antes que sire.
// @Tags pedigree
// @Produce json
// @Param catID path int true "Cat ID"
// @Param depth query int false "Generaciones"
// @Success 200 {object} generationsResponse
// @Router /cats/{catID}/pedigree/generations [get]
func generationsHandler(resolver *Resolver, catsSvc *cats.Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tree, depth, ok := resolveForRequest(w, r, resolver, catsSvc, opts)
		if !ok {
			return
		}

		gens := FlattenByGeneration(tree.Root)
		out := make([]generationResponse, 0, len(gens))
		for _, g := range gens {
			gr := generationResponse{Generation: g.Number, Cats: make([]entryResponse, 0, len(g.Entries))}
			for _, e := range g.Entries {
				gr.Cats = append(gr.Cats, entryResponse{
					ID:       e.ID,
					Slot:     e.Slot,
					Name:     e.Name,
					Gender:   e.Gender,
					Birthday: formatDate(e),
				})
			}
			out = append(out, gr)
		}

		writeJSON(w, http.StatusOK, generationsResponse{
			Depth:       depth,
			Generations: out,
			Issues:      toIssueResponses(tree.Issues),
		})
	}
}

// resolveForRequest hace lo común: auth, visibilidad de la raíz, depth y resolución.
func resolveForRequest(w http.ResponseWriter, r *http.Request, resolver *Resolver, catsSvc *cats.Service, opts HandlerOptions) (Tree, int, bool) {
	claims, ok := middleware.RequireClaims(w, r)
	if !ok {
		return Tree{}, 0, false
	}
	id, ok := cats.CatIDParam(w, r)
	if !ok {
		return Tree{}, 0, false
	}
	depth, err := ParseDepth(r.URL.Query().Get("depth"), opts.DefaultDepth)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return Tree{}, 0, false
	}

	if _, err := catsSvc.GetVisible(r.Context(), claims, id); err != nil {
		cats.WriteError(w, err)
		return Tree{}, 0, false
	}

	tree, err := resolver.ResolveAncestry(r.Context(), id, depth)
	if err != nil {
		opts.Logger.Error("pedigree resolution failed", map[string]any{
			"cat_id": id,
			"depth":  depth,
			"error":  err,
		})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return Tree{}, 0, false
	}
	if !tree.Found() {
		// borrado entre GetVisible y la resolución
		http.Error(w, "cat not found", http.StatusNotFound)
		return Tree{}, 0, false
	}

	Report(opts.Logger, opts.Metrics, id, tree)
	return tree, depth, true
}

// ParseDepth: vacío => def; negativo o no numérico => error; > MaxRequestDepth se recorta.
func ParseDepth(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, ErrInvalidDepth
	}
	if n > MaxRequestDepth {
		n = MaxRequestDepth
	}
	return n, nil
}

func toNodeResponse(n *Node) *nodeResponse {
	if n == nil {
		return nil
	}
	return &nodeResponse{
		Cat: summaryResponse{
			ID:        n.Cat.ID,
			Name:      n.Cat.Name,
			Callname:  n.Cat.Callname,
			Gender:    n.Cat.Gender,
			Birthday:  n.Cat.Birthday.Format("2006-01-02"),
			Microchip: n.Cat.Microchip,
			Profile:   "/cats/" + strconv.FormatInt(n.Cat.ID, 10),
		},
		Dam:  toNodeResponse(n.Dam),
		Sire: toNodeResponse(n.Sire),
	}
}

func toIssueResponses(in []Issue) []issueResponse {
	out := make([]issueResponse, 0, len(in))
	for _, is := range in {
		out = append(out, issueResponse(is))
	}
	return out
}

func formatDate(e Entry) string {
	if e.Birthday.IsZero() {
		return ""
	}
	return e.Birthday.Format("2006-01-02")
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
