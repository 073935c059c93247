package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"heatshield/internal/auth"
	"heatshield/internal/config"
	"heatshield/internal/handler"
	"heatshield/internal/logging"
)

// Deps bundles what the routes need. It is built once in main.
type Deps struct {
	Config         *config.Config
	Logger         zerolog.Logger
	JWTService     *auth.JWTService
	Revocations    auth.RevocationStore
	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	HeatmapHandler *handler.HeatmapHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, d Deps) {
	e.HideBanner = true
	e.JSONSerializer = JSONSerializer{}
	e.Validator = &CustomValidator{validator: handler.NewValidator()}
	e.HTTPErrorHandler = ErrorHandler(d.Logger)

	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(d.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(d.Config.BodyLimit))
	// Every origin is allowed unless CORS_ALLOW_ORIGINS narrows it.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: d.Config.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentType},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireToken := auth.Middleware(d.JWTService, d.Revocations)
	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", d.AuthHandler.Register)
	authGroup.POST("/login", d.AuthHandler.Login)
	authGroup.POST("/logout", d.AuthHandler.Logout, requireToken)

	profile := api.Group("/profile", requireToken)
	profile.GET("", d.ProfileHandler.GetProfile)
	profile.PUT("", d.ProfileHandler.UpdateProfile)
	profile.PUT("/change-password", d.ProfileHandler.ChangePassword)

	heatmap := api.Group("/heatmap")
	heatmap.POST("/location", d.HeatmapHandler.SaveLocation, requireToken)
	heatmap.GET("/heatmap-data", d.HeatmapHandler.ListHeatmapData)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
