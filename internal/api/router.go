package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dentalcare/clinic-api/internal/appointment"
	"github.com/dentalcare/clinic-api/internal/notification"
	"github.com/dentalcare/clinic-api/internal/user"
)

type RouterConfig struct {
	Users         *user.Service
	Appointments  *appointment.Service
	Notifications *notification.Service
	PgPool        *pgxpool.Pool
	Redis         *redis.Client
	JWTSecret     string
	AuthLimiter   *RateLimiter
	Logger        zerolog.Logger
	Env           string
	Version       string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/api", func(r chi.Router) {
		// Credential endpoints: unauthenticated, rate limited per IP.
		r.Group(func(r chi.Router) {
			if cfg.AuthLimiter != nil {
				r.Use(cfg.AuthLimiter.Middleware)
			}
			r.Post("/auth/register", registerHandler(cfg.Users))
			r.Post("/auth/login", loginHandler(cfg.Users))
		})

		// Everything below requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg.JWTSecret))

			r.Get("/users/me", getProfileHandler(cfg.Users))
			r.Put("/users/me", updateProfileHandler(cfg.Users))

			r.Get("/appointments/my", listMyAppointmentsHandler(cfg.Appointments))
			r.Post("/appointments", bookAppointmentHandler(cfg.Appointments))
			r.Put("/appointments/{id}", rescheduleAppointmentHandler(cfg.Appointments))
			r.Delete("/appointments/{id}", cancelAppointmentHandler(cfg.Appointments))

			r.Get("/notifications", listNotificationsHandler(cfg.Notifications))
			r.Get("/notifications/unread/count", unreadCountHandler(cfg.Notifications))
			r.Put("/notifications/{id}/read", markNotificationReadHandler(cfg.Notifications))
			r.Put("/notifications/read/all", markAllNotificationsReadHandler(cfg.Notifications))
			r.Delete("/notifications/{id}", deleteNotificationHandler(cfg.Notifications))

			// Admin surface
			r.Group(func(r chi.Router) {
				r.Use(AdminOnly)

				r.Get("/admin/users", adminListUsersHandler(cfg.Users))
				r.Get("/admin/appointments", adminListAppointmentsHandler(cfg.Appointments))
				r.Put("/admin/appointments/{id}/approve", adminDecisionHandler(cfg.Appointments, true))
				r.Put("/admin/appointments/{id}/reject", adminDecisionHandler(cfg.Appointments, false))
				r.Get("/admin/notifications/pending-count", adminPendingCountHandler(cfg.Appointments))
			})
		})
	})

	return r
}
