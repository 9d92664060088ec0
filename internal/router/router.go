package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/blog-auth-api/internal/handler"
	"github.com/iliyamo/blog-auth-api/internal/middleware"
)

// RegisterBase installs the error handler, CORS, the API documentation
// served at the default route, and the unauthenticated health check.
// Unmatched routes fall through to the error handler and come back as
// 404 {"message":"Not found"}.
func RegisterBase(e *echo.Echo) {
	e.HTTPErrorHandler = handler.NotFoundJSON
	e.Use(echomw.CORS())
	e.GET("/", handler.Documentation)
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the /api/auth surface.  The rate limiter wraps the
// whole group; the token middleware is attached per route because most
// of the group is reachable without a session.  reset-password runs
// under the reset-token secret, never the access secret.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	authed := middleware.Authenticate(a.Cfg.AccessTokenSecret)

	g := e.Group("/api/auth", limiter)
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout, authed)
	g.GET("/verified-email/:token", a.VerifiedEmail)
	g.POST("/change-password", a.ChangePassword, authed)
	g.POST("/forgot-password", a.ForgotPassword)
	g.POST("/reset-password/:token", a.ResetPassword, middleware.AuthenticateReset(a.Cfg.ResetTokenSecret))
}

// RegisterResources wires the authenticated resource routes.  The role
// group stacks its checks in declared order — token, then admin, then
// verified email — and the first failure is the one the client sees.
func RegisterResources(e *echo.Echo, accessSecret string, p *handler.PostHandler, pr *handler.ProfileHandler, r *handler.RoleHandler) {
	authed := middleware.Authenticate(accessSecret)

	posts := e.Group("/api/posts", authed)
	posts.GET("", p.Index)
	posts.POST("", p.Store)
	posts.GET("/:id", p.Show)
	posts.PUT("/:id", p.Update)
	posts.DELETE("/:id", p.Destroy)

	e.GET("/api/profile", pr.Index, authed)

	roles := e.Group("/api/role", authed, middleware.RequireAdmin, middleware.RequireVerifiedEmail)
	roles.GET("", r.Index)
	roles.POST("", r.Store)
	roles.PUT("/:id", r.Update)
	roles.DELETE("/:id", r.Destroy)
}
