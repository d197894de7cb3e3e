package http

import (
	"crypto/subtle"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Health      *Handler
	Submissions *SubmissionHandler
	Reviews     *ReviewHandler
}

type RouterConfig struct {
	// AdminPassword is the shared reviewer secret. Empty leaves /admin unrouted.
	AdminPassword string
	// Idempotency wraps POST /submissions when set.
	Idempotency echo.MiddlewareFunc
}

func NewRouter(h Handlers, cfg RouterConfig, log *zap.Logger) *echo.Echo {
	if log == nil {
		log = zap.NewNop()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogMethod:    true,
			LogURI:       true,
			LogStatus:    true,
			LogLatency:   true,
			LogRequestID: true,
			LogError:     true,
			HandleError:  true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				fields := []zap.Field{
					zap.String("method", v.Method),
					zap.String("uri", v.URI),
					zap.Int("status", v.Status),
					zap.Duration("latency", v.Latency),
					zap.String("request_id", v.RequestID),
				}
				if v.Error != nil {
					log.Warn("request", append(fields, zap.Error(v.Error))...)
					return nil
				}
				log.Info("request", fields...)
				return nil
			},
		}),
		middleware.Recover(),
	)

	e.GET("/health", h.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	create := h.Submissions.Create
	if cfg.Idempotency != nil {
		create = cfg.Idempotency(create)
	}
	e.POST("/submissions", create)
	e.GET("/submissions/status", h.Submissions.Status)

	if cfg.AdminPassword == "" {
		log.Warn("ADMIN_PASSWORD is empty: reviewer routes are disabled")
		return e
	}
	admin := e.Group("/admin", middleware.BasicAuth(func(_, password string, _ echo.Context) (bool, error) {
		return subtle.ConstantTimeCompare([]byte(password), []byte(cfg.AdminPassword)) == 1, nil
	}))
	admin.GET("/submissions", h.Submissions.List)
	admin.GET("/submissions/:id", h.Submissions.Get)
	admin.DELETE("/submissions/:id", h.Submissions.Delete)
	admin.GET("/submissions/:id/export", h.Submissions.Export)
	admin.POST("/submissions/:id/status/:status", h.Reviews.Review)
	admin.POST("/submissions/:id/resend", h.Reviews.Resend)
	admin.POST("/test-email", h.Reviews.TestEmail)
	return e
}
