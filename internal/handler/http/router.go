package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/element-cleaning/paystatement-backend-go/internal/handler/http/middleware"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AppName        string
	Version        string
	Env            string
	AllowedOrigins []string

	// JWTService protects every route but /auth when set. Nil disables auth.
	JWTService jwt.Service

	// FilesDir is served under /files when uploads are stored locally.
	FilesDir string
}

type Handlers struct {
	Auth       AuthHandler
	PayPeriod  PayPeriodHandler
	Contractor ContractorHandler
	Statement  StatementHandler
	Drive      DriveHandler
}

func NewRouter(cfg RouterConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", DriveTokenHeader},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json", "multipart/form-data"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTService != nil && h.Auth != nil {
			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", h.Auth.Login)
				r.Post("/refresh", h.Auth.RefreshToken)
				r.Post("/logout", h.Auth.Logout)
			})
		}

		r.Group(func(r chi.Router) {
			if cfg.JWTService != nil {
				r.Use(jwtauth.Verifier(cfg.JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired)
			}

			r.Route("/pay-periods", func(r chi.Router) {
				r.Get("/", h.PayPeriod.List)
				r.Get("/default", h.PayPeriod.Default)
				r.Get("/{id}", h.PayPeriod.GetByID)
			})

			r.Route("/contractors", func(r chi.Router) {
				r.Get("/", h.Contractor.List)
				r.Post("/", h.Contractor.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Contractor.GetByID)
					r.Put("/", h.Contractor.Update)
					r.Delete("/", h.Contractor.Deactivate)
				})
			})

			r.Route("/statements", func(r chi.Router) {
				r.Get("/", h.Statement.List)
				r.Post("/", h.Statement.Save)
				r.Post("/seed", h.Statement.Seed)
				r.Post("/preview", h.Statement.Preview)
				r.Post("/export", h.Statement.Export)
				r.Get("/register.xlsx", h.Statement.Register)
				r.Post("/upload-batch", h.Statement.UploadBatch)

				r.Route("/{key}", func(r chi.Router) {
					r.Get("/", h.Statement.GetByKey)
					r.Delete("/", h.Statement.Delete)
					r.Get("/export", h.Statement.ExportSaved)
					r.Post("/upload", h.Statement.Upload)
				})
			})

			r.Route("/drafts", func(r chi.Router) {
				r.Post("/", h.Statement.CreateDraft)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Statement.GetDraft)
					r.Put("/", h.Statement.UpdateDraft)
					r.Delete("/", h.Statement.DiscardDraft)
					r.Post("/preview", h.Statement.PreviewDraft)
					r.Post("/save", h.Statement.SaveDraft)
				})
			})

			if h.Drive != nil {
				r.Post("/drive/upload", h.Drive.Upload)
			}
		})
	})

	if cfg.FilesDir != "" {
		r.Group(func(r chi.Router) {
			if cfg.JWTService != nil {
				r.Use(jwtauth.Verifier(cfg.JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired)
			}
			r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(cfg.FilesDir))))
		})
	}
	return r
}
