package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"tasktrack/internal/config"
	"tasktrack/internal/errors"
	"tasktrack/internal/handler"
	"tasktrack/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
	userService service.UserService,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/refresh", authHandler.Refresh)

	// Protected routes: echo-jwt checks signature and expiry, then the
	// current-user middleware resolves the subject to a user row. Every
	// failure collapses into the same 401.
	tasks := e.Group("/tasks",
		echojwt.WithConfig(echojwt.Config{
			SigningKey:    []byte(cfg.JWTSecret),
			SigningMethod: cfg.JWTAlgorithm,
			ErrorHandler: func(c echo.Context, err error) error {
				return unauthorized(c)
			},
		}),
		resolveCurrentUser(userService),
	)

	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("", taskHandler.ListTasks)
	tasks.GET("/search", taskHandler.SearchTasks)
	tasks.GET("/:id", taskHandler.GetTask)
}

// resolveCurrentUser turns the verified token's subject claim into a user
// and stores it in the request context. An empty subject or a subject that
// no longer exists is treated the same as a bad token.
func resolveCurrentUser(users service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwtv5.Token)
			if !ok {
				return unauthorized(c)
			}
			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				return unauthorized(c)
			}
			user, err := users.GetByName(c.Request().Context(), subject)
			if err != nil {
				return unauthorized(c)
			}
			c.Set(handler.CurrentUserKey, user)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{
		Error: errors.ErrInvalidToken.Error(),
		Code:  "INVALID_TOKEN",
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
