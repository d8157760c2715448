package http

import (
	"log/slog"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/session"
	"localstore/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// RouterConfig carries what the router needs besides the Server.
type RouterConfig struct {
	Tokens   *TokenService
	Sessions func() ports.SessionRepository
	Clock    kernel.Clock
	Logger   *slog.Logger
	LogLevel log.Lvl
}

// NewRouter registers every route of the API on a fresh echo instance.
func NewRouter(s *Server, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(cfg.LogLevel)

	logger := cfg.Logger.With("component", "http")
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				logger.ErrorContext(c.Request().Context(), "Request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "Request served", attrs...)
			return nil
		},
	}))

	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/login", s.Login)

	authed := api.Group("", Authenticate(cfg.Tokens, cfg.Sessions, cfg.Clock))
	authed.POST("/logout", s.Logout)
	authed.GET("/session", s.Session)

	partner := authed.Group("/partner", RequireRole(session.DeliveryPartner))
	partner.GET("/profile", s.GetProfile)
	partner.PUT("/availability", s.SetAvailability)
	partner.POST("/release", s.Release)
	partner.POST("/watch", s.Focus)
	partner.DELETE("/watch", s.Blur)
	partner.GET("/alerts", s.GetAlerts)
	partner.GET("/analytics", s.GetAnalytics)
	partner.GET("/orders/new", s.GetNewOrders)
	partner.GET("/orders/recent", s.GetRecentOrders)
	partner.GET("/orders/:orderId", s.GetOrder)
	partner.GET("/orders/:orderId/runs", s.GetRuns)
	partner.POST("/orders/:orderId/accept", s.AcceptOrder)
	partner.POST("/orders/:orderId/reject", s.RejectOrder)
	partner.POST("/orders/:orderId/start", s.StartDelivery)
	partner.POST("/orders/:orderId/complete", s.CompleteDelivery)
	partner.POST("/orders/:orderId/cancel", s.CancelDelivery)
	partner.GET("/orders/:orderId/stores/:storeId/pickup", s.GetPickup)
	partner.POST("/orders/:orderId/stores/:storeId/pickup", s.CompletePickup)

	store := authed.Group("/store", RequireRole(session.StorePartner))
	store.GET("/orders", s.GetStoreOrders)
	store.GET("/archive", s.GetStoreArchive)

	return e
}
