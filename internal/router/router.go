package router

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"cat-registry/internal/adapters/auth/cookieauth"
	"cat-registry/internal/adapters/session/cache"
	mem "cat-registry/internal/adapters/storage/memory"
	pg "cat-registry/internal/adapters/storage/postgres"
	"cat-registry/internal/domain/access"
	"cat-registry/internal/domain/breeders"
	"cat-registry/internal/domain/cats"
	"cat-registry/internal/domain/export"
	"cat-registry/internal/domain/owners"
	"cat-registry/internal/domain/pedigree"
	"cat-registry/internal/middleware"
	"cat-registry/internal/platform/logger"
	"cat-registry/internal/platform/metrics"
	"cat-registry/internal/ports/session"

	// documento OpenAPI registrado para /swagger
	_ "cat-registry/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

const defaultSessionTTL = 12 * time.Hour

type Options struct {
	Logger  logger.Logger
	Metrics *metrics.Metrics // nil => se crea uno propio

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Sessions session.Store      // nil => go-cache in-process
	Cookies  *cookieauth.Cookies // nil => cookie con clave efímera

	// DevAuth acepta X-Debug-Owner-ID / X-Debug-Permission en vez de sesiones.
	DevAuth bool

	SessionTTL time.Duration

	// nil => default (2 y 3). 0 es válido: solo el gato raíz.
	PedigreeDepth *int
	ExportDepth   *int

	// Si ambos vienen se asegura el admin inicial.
	AdminEmail    string
	AdminPassword string
}

func NewRouter(ctx context.Context, opts Options) (http.Handler, error) {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.Metrics == nil {
		m, err := metrics.New()
		if err != nil {
			return nil, err
		}
		opts.Metrics = m
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	pedigreeDepth, exportDepth := pedigree.DefaultMaxDepth, export.DefaultPDFDepth
	if opts.PedigreeDepth != nil {
		pedigreeDepth = *opts.PedigreeDepth
	}
	if opts.ExportDepth != nil {
		exportDepth = *opts.ExportDepth
	}
	if pedigreeDepth < 0 || pedigreeDepth > pedigree.MaxRequestDepth {
		return nil, fmt.Errorf("pedigree depth %d out of range (0-%d)", pedigreeDepth, pedigree.MaxRequestDepth)
	}
	if opts.Sessions == nil {
		opts.Sessions = cache.New(opts.SessionTTL, 0)
	}
	if opts.Cookies == nil {
		opts.Cookies = cookieauth.NewCookies(cookieauth.CookieOptions{
			Name:   "catreg_session",
			MaxAge: opts.SessionTTL,
		})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(opts.Logger))
	r.Use(middleware.AccessLog(opts.Logger, opts.Metrics))

	if opts.DevAuth {
		r.Use(middleware.AuthContext(nil, nil))
	} else {
		r.Use(middleware.AuthContext(cookieauth.NewVerifier(opts.Sessions), opts.Cookies.Token))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", opts.Metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		ownerRepo   owners.Repository
		breederRepo breeders.Repository
		catRepo     cats.Repository
	)

	if opts.DB != nil {
		ownerRepo = pg.NewOwnersRepo(opts.DB)
		breederRepo = pg.NewBreedersRepo(opts.DB)
		catRepo = pg.NewCatsRepo(opts.DB)
	} else {
		store := mem.NewStore()
		ownerRepo = store.Owners()
		breederRepo = store.Breeders()
		catRepo = store.Cats()
	}

	// Services por módulo
	ownersSvc := owners.NewService(ownerRepo, opts.Sessions)
	breedersSvc := breeders.NewService(breederRepo)
	catsSvc := cats.NewService(catRepo, ownersSvc, breedersSvc)
	resolver := pedigree.NewResolver(catsSvc)
	accessSvc := access.NewService(ownersSvc, opts.Sessions, opts.SessionTTL)
	exportSvc, err := export.NewService(catsSvc, ownersSvc, breedersSvc, resolver, exportDepth)
	if err != nil {
		return nil, err
	}

	// Rutas por módulo
	access.RegisterRoutes(r, accessSvc, access.HandlerDeps{
		Owners:  ownersSvc,
		Cookies: opts.Cookies,
		Logger:  opts.Logger,
		Metrics: opts.Metrics,
	})
	owners.RegisterRoutes(r, ownersSvc)
	breeders.RegisterRoutes(r, breedersSvc)
	// export y pedigree cuelgan de /cats/... directo en el router raíz
	export.RegisterRoutes(r, exportSvc, export.HandlerOptions{Logger: opts.Logger, Metrics: opts.Metrics})
	cats.RegisterRoutes(r, catsSvc)
	pedigree.RegisterRoutes(r, resolver, catsSvc, pedigree.HandlerOptions{
		DefaultDepth: pedigreeDepth,
		Logger:       opts.Logger,
		Metrics:      opts.Metrics,
	})

	if opts.AdminEmail != "" && opts.AdminPassword != "" {
		o, created, err := ownersSvc.EnsureAdmin(ctx, opts.AdminEmail, opts.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("ensure admin: %w", err)
		}
		if created {
			opts.Logger.Info("admin created", map[string]any{"owner_id": o.ID, "email": o.Email})
		}
	}

	return r, nil
}
