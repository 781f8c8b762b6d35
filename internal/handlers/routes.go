package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/diet-forms/internal/auth"
	"github.com/gdg-garage/diet-forms/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r *chi.Mux, logger *slog.Logger, authHandler *auth.AuthHandler, sessionHandler *SessionHandler, dietHandler *DietHandler, noticeHandler *NoticeHandler) huma.API {
	r.Use(chimiddleware.RequestID)
	r.Use(authHandler.SessionMiddleware)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Diet Forms API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
	}
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	huma.Post(api, "/sessions", sessionHandler.HandleCreate, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	})
	huma.Get(api, "/notice", noticeHandler.HandleCurrent)

	// Session routes
	secured := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
	}
	huma.Get(api, "/session", sessionHandler.HandleGet, secured)
	huma.Put(api, "/session/form", sessionHandler.HandleUpdateForm, secured)
	huma.Put(api, "/session/active-service", sessionHandler.HandleSetActiveService, secured)
	huma.Get(api, "/session/diff", sessionHandler.HandleDiff, secured)
	huma.Post(api, "/session/reset", sessionHandler.HandleReset, secured)
	huma.Post(api, "/session/save", sessionHandler.HandleSave, secured)
	huma.Post(api, "/session/load/{id}", sessionHandler.HandleLoad, secured)

	huma.Get(api, "/diets", dietHandler.HandleList, secured)
	huma.Get(api, "/diets/{id}", dietHandler.HandleGet, secured)
	huma.Delete(api, "/diets/{id}", dietHandler.HandleDelete, secured)
	huma.Delete(api, "/diets", dietHandler.HandleClear, secured)

	return api
}
