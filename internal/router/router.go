package router // defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"cineman/internal/handler"
	"cineman/internal/middleware"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Movie   *handler.MovieHandler
	Booking *handler.BookingHandler
}

// Register mounts every route.  Unauthenticated operations live under
// /v1/auth plus the health check; everything else sits behind the JWT
// middleware, which only admits access tokens.
func Register(e *echo.Echo, h Handlers, accessSecret string) {
	e.GET("/healthz", handler.Health)

	// Session establishment and token-driven account flows need no JWT;
	// they authenticate through credentials or emailed tokens instead.
	g := e.Group("/v1/auth")
	g.POST("/register", h.Auth.Register)
	g.POST("/login", h.Auth.Login)
	g.POST("/refresh", h.Auth.Refresh)
	g.POST("/confirm-email", h.Auth.ConfirmEmail)
	g.POST("/forgot-password", h.Auth.ForgotPassword)
	g.POST("/reset-password", h.Auth.ResetPassword)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(accessSecret))

	auth.POST("/auth/change-password", h.Auth.ChangePassword)
	auth.POST("/auth/change-email", h.Auth.ChangeEmail)

	auth.GET("/users/me", h.User.GetProfile)
	auth.PUT("/users/me", h.User.UpdateProfile)
	auth.DELETE("/users/me", h.User.DeleteUser)

	auth.GET("/movies/query", h.Movie.QueryParameters)
	auth.POST("/movies/query", h.Movie.Search)
	auth.GET("/movies/:id", h.Movie.GetByID)

	auth.POST("/bookings", h.Booking.Create)
	auth.GET("/bookings", h.Booking.List)
	auth.GET("/bookings/:id", h.Booking.Get)
	auth.DELETE("/bookings/:id", h.Booking.Cancel)
}
