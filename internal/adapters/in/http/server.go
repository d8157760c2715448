// Package http exposes the service as a JSON API under /api/v1.
package http

import (
	"net/http"

	"localstore/internal/core/application/observer"
	"localstore/internal/core/application/usecases/commands"
	"localstore/internal/core/application/usecases/queries"
	"localstore/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Handlers are the use cases the API calls.
type Handlers struct {
	Login           commands.LoginCommandHandler
	Logout          commands.LogoutCommandHandler
	SetAvailability commands.SetAvailabilityCommandHandler
	Release         commands.ReleasePartnerCommandHandler
	Accept          commands.AcceptOrderCommandHandler
	Reject          commands.RejectOrderCommandHandler
	CompletePickup  commands.CompletePickupCommandHandler
	StartDelivery   commands.StartDeliveryCommandHandler
	FinishDelivery  commands.FinishDeliveryCommandHandler

	NewOrders    queries.GetNewOrdersQueryHandler
	RecentOrders queries.GetRecentOrdersQueryHandler
	PartnerOrder queries.GetPartnerOrderQueryHandler
	Profile      queries.GetPartnerProfileQueryHandler
	Analytics    queries.GetPartnerAnalyticsQueryHandler
	PickupStatus queries.GetPickupStatusQueryHandler
	StoreOrders  queries.GetStoreOrdersQueryHandler
	StoreArchive queries.GetStoreArchiveQueryHandler
	Runs         queries.GetTransitionRunsQueryHandler
}

// Server translates requests into commands and queries.
type Server struct {
	h       Handlers
	watcher *observer.Watcher
	tracker *observer.Tracker
}

func NewServer(h Handlers, watcher *observer.Watcher, tracker *observer.Tracker) *Server {
	return &Server{h: h, watcher: watcher, tracker: tracker}
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// Login handles POST /api/v1/login.
func (s *Server) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	cmd, err := commands.NewLoginCommand(req.Role, req.UserID, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	res, err := s.h.Login.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, LoginResponse{Token: res.Token, Session: toSession(res.Session)})
}

// Logout handles POST /api/v1/logout.
func (s *Server) Logout(c echo.Context) error {
	sess, _ := currentSession(c)
	cmd, err := commands.NewLogoutCommand(sess.ID())
	if err != nil {
		return writeError(c, err)
	}
	if err = s.h.Logout.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	if s.watcher != nil {
		s.watcher.Blur(sess.UserID())
	}
	return c.NoContent(http.StatusNoContent)
}

// Session handles GET /api/v1/session.
func (s *Server) Session(c echo.Context) error {
	sess, _ := currentSession(c)
	return c.JSON(http.StatusOK, toSession(sess))
}

func userID(c echo.Context) kernel.Key {
	sess, _ := currentSession(c)
	return sess.UserID()
}
