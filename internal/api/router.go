package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	apiContext "linkhub/internal/api/context"
	"linkhub/internal/api/handlers"
	"linkhub/internal/api/middleware"
	"linkhub/internal/pkg/errors"
	"linkhub/internal/platform/config"
)

type Dependencies struct {
	AuthHandler       *handlers.AuthHandler
	LinkHandler       *handlers.LinkHandler
	AnalyticsHandler  *handlers.AnalyticsHandler
	AppearanceHandler *handlers.AppearanceHandler
	SocialHandler     *handlers.SocialHandler
	ProfileHandler    *handlers.ProfileHandler
	PublicHandler     *handlers.PublicHandler
	TrackingHandler   *handlers.TrackingHandler
	HealthHandler     *handlers.HealthHandler
	MetricsHandler    *handlers.MetricsHandler
	AuthMiddleware    *middleware.AuthMiddleware
	Limiter           middleware.Limiter
	RateLimit         config.RateLimitConfig
	UploadsDir        string
}

type middlewareFunc = func(http.HandlerFunc) http.HandlerFunc

// routes registers handlers with the access log and metrics middleware
// labelled by the route pattern.
type routes struct {
	router *httprouter.Router
}

func (rt routes) handle(method, path string, handler http.HandlerFunc, middlewares ...middlewareFunc) {
	mws := append([]middlewareFunc{middleware.Observe(path)}, middlewares...)
	rt.router.Handle(method, path, chain(handler, mws...))
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errors.NotFound(w, "Not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	rt := routes{router: router}
	authMid := deps.AuthMiddleware.Handle
	authLimit := middleware.RateLimit(deps.Limiter, "auth", deps.RateLimit.AuthPerMinute, deps.RateLimit.TrustProxy)
	trackLimit := middleware.RateLimit(deps.Limiter, "track", deps.RateLimit.TrackPerMinute, deps.RateLimit.TrustProxy)

	// Operational
	rt.handle(http.MethodGet, "/health", deps.HealthHandler.Check)
	if deps.MetricsHandler != nil {
		router.Handler(http.MethodGet, "/metrics", http.HandlerFunc(deps.MetricsHandler.Export))
	}
	router.ServeFiles("/uploads/*filepath", http.Dir(deps.UploadsDir))

	// Authentication
	rt.handle(http.MethodPost, "/api/auth/register", deps.AuthHandler.Register, authLimit)
	rt.handle(http.MethodPost, "/api/auth/login", deps.AuthHandler.Login, authLimit)
	rt.handle(http.MethodPost, "/api/auth/logout", deps.AuthHandler.Logout)
	rt.handle(http.MethodGet, "/api/auth/me", deps.AuthHandler.Me, authMid)

	// Links. PUT /api/links/reorder is served by the :id route.
	rt.handle(http.MethodGet, "/api/links", deps.LinkHandler.List, authMid)
	rt.handle(http.MethodPost, "/api/links", deps.LinkHandler.Create, authMid)
	rt.handle(http.MethodPut, "/api/links/:id", deps.LinkHandler.Update, authMid)
	rt.handle(http.MethodPatch, "/api/links/:id", deps.LinkHandler.Update, authMid)
	rt.handle(http.MethodDelete, "/api/links/:id", deps.LinkHandler.Delete, authMid)

	// Analytics
	rt.handle(http.MethodGet, "/api/analytics", deps.AnalyticsHandler.Overview, authMid)
	rt.handle(http.MethodGet, "/api/analytics/trends", deps.AnalyticsHandler.Trends, authMid)
	rt.handle(http.MethodGet, "/api/analytics/export", deps.AnalyticsHandler.Export, authMid)

	// Appearance and social links
	rt.handle(http.MethodGet, "/api/appearance", deps.AppearanceHandler.Get, authMid)
	rt.handle(http.MethodPut, "/api/appearance", deps.AppearanceHandler.Update, authMid)
	rt.handle(http.MethodGet, "/api/social-links", deps.SocialHandler.List, authMid)
	rt.handle(http.MethodPost, "/api/social-links", deps.SocialHandler.Add, authMid)
	rt.handle(http.MethodPut, "/api/social-links", deps.SocialHandler.Replace, authMid)
	rt.handle(http.MethodDelete, "/api/social-links", deps.SocialHandler.Remove, authMid)

	// Profile
	rt.handle(http.MethodGet, "/api/profile", deps.ProfileHandler.Get, authMid)
	rt.handle(http.MethodPut, "/api/profile", deps.ProfileHandler.Update, authMid)
	rt.handle(http.MethodPost, "/api/avatar", deps.ProfileHandler.UploadAvatar, authMid)
	rt.handle(http.MethodDelete, "/api/avatar", deps.ProfileHandler.DeleteAvatar, authMid)

	// Public
	rt.handle(http.MethodGet, "/api/public-profile/:username", deps.PublicHandler.Profile)
	rt.handle(http.MethodGet, "/api/public-profile/:username/qr", deps.PublicHandler.QRCode)
	rt.handle(http.MethodPost, "/api/track-click", deps.TrackingHandler.TrackClick, trackLimit)
	rt.handle(http.MethodPost, "/api/track-view", deps.TrackingHandler.TrackView, trackLimit)

	return router
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...middlewareFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}
