package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/notice-management/internal/auth"
	"github.com/frahmantamala/notice-management/internal/dashboard"
	"github.com/frahmantamala/notice-management/internal/department"
	"github.com/frahmantamala/notice-management/internal/notice"
	"github.com/frahmantamala/notice-management/internal/notifier"
	"github.com/frahmantamala/notice-management/internal/transport/middleware"
	"github.com/frahmantamala/notice-management/internal/transport/swagger"
	"github.com/frahmantamala/notice-management/internal/user"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	departmentHandler *department.Handler,
	noticeHandler *notice.Handler,
	notifierHandler *notifier.Handler,
	dashboardHandler *dashboard.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)

			// Registration is an admin action, not a self-service signup.
			sr.Group(func(ar chi.Router) {
				ar.Use(authHandler.AuthMiddleware)
				ar.Use(authHandler.RequireOperation(auth.OpRegisterUser))
				ar.Post("/register", userHandler.Register)
			})
		})

		// Notices are publicly readable; a valid token adds view tracking.
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.OptionalAuthMiddleware)
			pr.Use(middleware.UserContext)
			pr.Get("/notices", noticeHandler.List)
			pr.Get("/notices/{id}", noticeHandler.Get)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)
			pr.Use(middleware.UserContext)

			pr.Get("/users/me", userHandler.GetCurrentUser)

			pr.Route("/notices", func(nr chi.Router) {
				nr.With(authHandler.RequireOperation(auth.OpCreateNotice)).
					Post("/", noticeHandler.Create)
				nr.With(authHandler.RequireOperation(auth.OpUpdateNotice)).
					Patch("/{id}", noticeHandler.Update)
				nr.With(authHandler.RequireOperation(auth.OpApproveNotice)).
					Post("/{id}/approve", noticeHandler.Approve)
				nr.With(authHandler.RequireOperation(auth.OpArchiveNotice)).
					Delete("/{id}", noticeHandler.Archive)
				nr.With(authHandler.RequireOperation(auth.OpViewTracking)).
					Get("/{id}/tracking", noticeHandler.Tracking)

				// Any authenticated reader may record a download.
				nr.Post("/{id}/download", noticeHandler.MarkDownloaded)
			})

			pr.Route("/departments", func(dr chi.Router) {
				dr.Get("/", departmentHandler.List)
				dr.Get("/{id}", departmentHandler.Get)

				dr.Group(func(mr chi.Router) {
					mr.Use(authHandler.RequireOperation(auth.OpManageDepartments))
					mr.Post("/", departmentHandler.Create)
					mr.Patch("/{id}", departmentHandler.Update)
					mr.Delete("/{id}", departmentHandler.Delete)
				})
			})

			pr.Group(func(dr chi.Router) {
				dr.Use(authHandler.RequireOperation(auth.OpViewDashboard))
				dr.Get("/admin/dashboard", dashboardHandler.AdminDashboard)
				dr.Get("/department/dashboard", dashboardHandler.DepartmentDashboard)
			})

			pr.Group(func(nr chi.Router) {
				nr.Use(authHandler.RequireOperation(auth.OpDirectNotify))
				nr.Post("/notify/email", notifierHandler.SendEmail)
				nr.Post("/notify/sms", notifierHandler.SendSMS)
				nr.Post("/notify/push", notifierHandler.SendPush)
			})
		})
	})
}
