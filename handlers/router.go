package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"overtimepay/config"
	"overtimepay/middleware"
	"overtimepay/models"
)

func NewRouter(cfg *config.Config, authHandler *AuthHandler, overtimeHandler *OvertimeHandler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware)

			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
			r.Post("/change-password", authHandler.ChangePassword)

			// Routes that require password to be changed first
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePasswordChange)

				r.Get("/settings", overtimeHandler.GetSettings)
				r.Put("/settings", overtimeHandler.UpdateSettings)

				r.Route("/records", func(r chi.Router) {
					r.Get("/", overtimeHandler.ListRecords)
					r.Post("/", overtimeHandler.CreateRecord)
					r.Get("/{recordID}", overtimeHandler.GetRecord)
					r.Put("/{recordID}", overtimeHandler.UpdateRecord)
					r.Delete("/{recordID}", overtimeHandler.DeleteRecord)
				})

				r.Get("/period", overtimeHandler.Period)
				r.Get("/days", overtimeHandler.Days)
				r.Get("/days.csv", overtimeHandler.ExportCSV)

				r.Route("/punch", func(r chi.Router) {
					r.Get("/", overtimeHandler.PunchStatus)
					r.Post("/start", overtimeHandler.PunchStart)
					r.Post("/stop", overtimeHandler.PunchStop)
				})

				// Admin only routes
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(models.RoleAdmin))
					r.Get("/users", authHandler.ListUsers)
					r.Put("/users/{userID}", authHandler.UpdateUser)
					r.Delete("/users/{userID}", authHandler.DeleteUser)
				})
			})
		})
	})

	return router
}
