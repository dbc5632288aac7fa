package adapthttp

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/TKJapan/diet-mvp/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	weight    *app.WeightService
	meal      *app.MealService
	summary   *app.SummaryService
	reminders *app.ReminderService
	authSvc   *app.AuthService

	oidcConfig  *OIDCConfig
	webDir      string
	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(ws *app.WeightService, ms *app.MealService, ss *app.SummaryService, rs *app.ReminderService, as *app.AuthService, oc *OIDCConfig, webDir string, disableAuth bool) *Server {
	if oc == nil {
		oc = &OIDCConfig{}
	}
	return &Server{
		weight:      ws,
		meal:        ms,
		summary:     ss,
		reminders:   rs,
		authSvc:     as,
		oidcConfig:  oc,
		webDir:      webDir,
		disableAuth: disableAuth,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)

	// Auth endpoints stay outside the session check.
	r.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", s.handleLogout).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/setup", s.handleSetupUser).Methods(http.MethodPost)
	r.HandleFunc("/api/config", s.handleConfig).Methods(http.MethodGet)
	r.HandleFunc("/auth/sso/login", s.handleSSOLogin).Methods(http.MethodGet)
	r.HandleFunc("/auth/sso/callback", s.handleSSOCallback).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.authMiddleware)

	api.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)

	api.HandleFunc("/weight/today", s.handleWeightToday).Methods(http.MethodGet)
	api.HandleFunc("/weight", s.handleWeightCreate).Methods(http.MethodPost)

	api.HandleFunc("/meal", s.handleMealCreate).Methods(http.MethodPost)
	api.HandleFunc("/meal/today", s.handleMealToday).Methods(http.MethodGet)

	api.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/trend", s.handleTrend).Methods(http.MethodGet)
	api.HandleFunc("/streak", s.handleStreak).Methods(http.MethodGet)
	api.HandleFunc("/data/clear", s.handleDataClear).Methods(http.MethodPost)

	api.HandleFunc("/reminders", s.handleRemindersGet).Methods(http.MethodGet)
	api.HandleFunc("/reminders", s.handleRemindersPut).Methods(http.MethodPut)

	r.PathPrefix("/").Handler(spaFromDisk(s.webDir))

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(s.loggingMiddleware(withNoCache(r)))
}
