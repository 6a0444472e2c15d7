package http

import (
	"io"
	"log/slog"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/user"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/handler/http/middleware"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Env            string
	Version        string
	LogLevel       slog.Level
	AllowedOrigins []string
}

// NewLogger builds the ECS-formatted JSON logger shared by the request
// logger and the services.
func NewLogger(out io.Writer, opts RouterOptions) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-hub"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)
}

func NewRouter(opts RouterOptions, logger *slog.Logger, JWTService jwt.Service, biometricHandler BiometricHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.RequireCompany)

			r.Route("/biometric", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionPolicyView)).Get("/policy", biometricHandler.GetPolicy)

				// Manager and owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Route("/uploads", func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionBiometricUpload))
						r.Post("/", biometricHandler.Upload)
						r.Get("/*", biometricHandler.DownloadUpload)
						r.Delete("/*", biometricHandler.DeleteUpload)
					})

					r.Route("/imports", func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionBiometricImport))
						r.Post("/", biometricHandler.Import)
						r.Post("/stored", biometricHandler.ImportStored)
						r.With(middleware.RequirePermission(user.PermissionBiometricExport)).Post("/{format}", biometricHandler.Export)
					})
				})
			})
		})
	})

	return r
}
