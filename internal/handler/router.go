/*
Package handler provides the HTTP handlers and routing setup for the ShineSmile server.

This file defines the main Router, applying necessary middleware like logging, CORS,
authentication and IP-based rate limiting before delegating requests to specific
handlers (auth, appointments, admin and the chat WebSocket).
*/
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"shinesmile/internal/pkg/auth/jwt"
	"shinesmile/internal/pkg/limiter"
	"shinesmile/internal/pkg/logx"
	"shinesmile/internal/pkg/resp"
)

const (
	AuthRate    = 0.2
	AuthBurst   = 5
	BookRate    = 0.1
	BookBurst   = 5
	SocketRate  = 0.5
	SocketBurst = 10
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter("auth", rate.Limit(AuthRate), AuthBurst)
	bookLimiter := limiter.NewIPRateLimiter("booking", rate.Limit(BookRate), BookBurst)
	socketLimiter := limiter.NewIPRateLimiter("websocket", rate.Limit(SocketRate), SocketBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", HandleHealth(deps))

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/auth", func(auth chi.Router) {
			auth.With(authLimiter.Middleware).Post("/register", HandleRegister(deps))
			auth.With(authLimiter.Middleware).Post("/login", HandleLogin(deps))

			auth.With(jwt.RequireAuth).Get("/me", HandleGetMe(deps))
			auth.With(jwt.RequireAuth).Put("/profile", HandleUpdateProfile(deps))
		})

		api.Route("/appointments", func(ap chi.Router) {
			ap.Get("/available-slots/{date}", HandleAvailableSlots(deps))

			ap.Group(func(user chi.Router) {
				user.Use(jwt.RequireAuth)

				user.With(bookLimiter.Middleware).Post("/book", HandleBookAppointment(deps))
				user.Get("/my-appointments", HandleMyAppointments(deps))
				user.Get("/{id}", HandleGetAppointment(deps))
				user.Patch("/{id}/cancel", HandleCancelAppointment(deps))
			})

			ap.Group(func(admin chi.Router) {
				admin.Use(jwt.RequireAdmin)

				admin.Get("/all-appointments", HandleListAllAppointments(deps))
				admin.Put("/{id}", HandleUpdateAppointment(deps))
				admin.Delete("/{id}", HandleDeleteAppointment(deps))
			})
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(jwt.RequireAdmin)

			admin.Get("/appointments", HandleListAllAppointments(deps))
			admin.Get("/appointments/{id}", HandleGetAppointment(deps))
			admin.Patch("/appointments/{id}/status", HandleSetAppointmentStatus(deps))
			admin.Put("/appointments/{id}", HandleUpdateAppointment(deps))
			admin.Delete("/appointments/{id}", HandleDeleteAppointment(deps))
			admin.Get("/statistics", HandleStatistics(deps))
			admin.Get("/users", HandleListUsers(deps))
		})
	})

	r.Get("/ws", HandleWebSocket(deps.Hub, wsUpgrader, socketLimiter, deps.Config.JWTSecret))

	return r
}

// HandleHealth reports liveness together with the chat hub's counters.
func HandleHealth(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"status":  "ok",
			"service": "ShineSmile Dental API",
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if snapshot, err := deps.Hub.Snapshot(ctx); err == nil {
			data["chat"] = snapshot
		} else {
			logx.FromRequest(r).Warn().Err(err).Msg("Chat hub snapshot unavailable")
			data["chat"] = "unavailable"
		}

		resp.RespondSuccess(w, r, data)
	}
}
