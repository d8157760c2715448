package http

import (
	"net/http"

	"localstore/internal/core/application/usecases/commands"
	"localstore/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetProfile handles GET /api/v1/partner/profile.
func (s *Server) GetProfile(c echo.Context) error {
	q, err := queries.NewGetPartnerProfileQuery(userID(c).String())
	if err != nil {
		return writeError(c, err)
	}
	res, err := s.h.Profile.Handle(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Profile{Phone: res.Phone, Availability: res.Availability, Profile: res.Profile})
}

// SetAvailability handles PUT /api/v1/partner/availability.
func (s *Server) SetAvailability(c echo.Context) error {
	var req AvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}
	cmd, err := commands.NewSetAvailabilityCommand(userID(c).String(), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	if err = s.h.SetAvailability.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Release handles POST /api/v1/partner/release.
func (s *Server) Release(c echo.Context) error {
	var req ReleaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}
	cmd, err := commands.NewReleasePartnerCommand(userID(c).String(), req.Mode)
	if err != nil {
		return writeError(c, err)
	}
	if err = s.h.Release.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Focus handles POST /api/v1/partner/watch: the app came to the foreground.
func (s *Server) Focus(c echo.Context) error {
	s.watcher.Focus(userID(c))
	return c.JSON(http.StatusOK, Watch{Focused: true})
}

// Blur handles DELETE /api/v1/partner/watch: the app went to the background.
func (s *Server) Blur(c echo.Context) error {
	s.watcher.Blur(userID(c))
	return c.JSON(http.StatusOK, Watch{Focused: false})
}

// GetAlerts handles GET /api/v1/partner/alerts.
func (s *Server) GetAlerts(c echo.Context) error {
	ringing := s.tracker.Alerts(userID(c).String())
	if ringing == nil {
		ringing = []string{}
	}
	return c.JSON(http.StatusOK, Alerts{Ringing: ringing})
}

// GetAnalytics handles GET /api/v1/partner/analytics.
func (s *Server) GetAnalytics(c echo.Context) error {
	q, err := queries.NewGetPartnerAnalyticsQuery(userID(c).String())
	if err != nil {
		return writeError(c, err)
	}
	res, err := s.h.Analytics.Handle(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toAnalytics(res))
}

// GetNewOrders handles GET /api/v1/partner/orders/new.
func (s *Server) GetNewOrders(c echo.Context) error {
	q, err := queries.NewGetNewOrdersQuery(userID(c).String())
	if err != nil {
		return writeError(c, err)
	}
	views, err := s.h.NewOrders.Handle(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	orders, err := toOrders(views)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// GetRecentOrders handles GET /api/v1/partner/orders/recent. A focused
// partner gets the snapshot of the last poll; otherwise the store is read.
func (s *Server) GetRecentOrders(c echo.Context) error {
	phone := userID(c)
	if snap, ok := s.watcher.Recent(phone); ok {
		orders, err := toOrders(snap.Orders)
		if err != nil {
			return writeError(c, err)
		}
		polled := snap.PolledAt
		return c.JSON(http.StatusOK, RecentOrders{Orders: orders, PolledAt: &polled})
	}

	q, err := queries.NewGetRecentOrdersQuery(phone.String())
	if err != nil {
		return writeError(c, err)
	}
	views, err := s.h.RecentOrders.Handle(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	orders, err := toOrders(views)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, RecentOrders{Orders: orders})
}

// GetOrder handles GET /api/v1/partner/orders/:orderId.
func (s *Server) GetOrder(c echo.Context) error {
	q, err := queries.NewGetPartnerOrderQuery(userID(c).String(), c.Param("orderId"))
	if err != nil {
		return writeError(c, err)
	}
	view, err := s.h.PartnerOrder.Handle(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	o, err := toOrder(view)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// GetRuns handles GET /api/v1/partner/orders/:orderId/runs. Only the runs the
// partner started are listed.
func (s *Server) GetRuns(c echo.Context) error {
	q, err := queries.NewGetTransitionRunsQuery(c.Param("orderId"))
	if err != nil {
		return writeError(c, err)
	}
	entries, err := s.h.Runs.Handle(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	phone := userID(c).String()
	runs := make([]Run, 0, len(entries))
	for _, e := range entries {
		if e.Actor() == phone {
			runs = append(runs, toRun(e))
		}
	}
	return c.JSON(http.StatusOK, runs)
}

// AcceptOrder handles POST /api/v1/partner/orders/:orderId/accept.
func (s *Server) AcceptOrder(c echo.Context) error {
	cmd, err := commands.NewAcceptOrderCommand(userID(c).String(), c.Param("orderId"))
	if err != nil {
		return writeError(c, err)
	}
	if err = s.h.Accept.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RejectOrder handles POST /api/v1/partner/orders/:orderId/reject.
func (s *Server) RejectOrder(c echo.Context) error {
	cmd, err := commands.NewRejectOrderCommand(userID(c).String(), c.Param("orderId"))
	if err != nil {
		return writeError(c, err)
	}
	if err = s.h.Reject.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// StartDelivery handles POST /api/v1/partner/orders/:orderId/start.
func (s *Server) StartDelivery(c echo.Context) error {
	cmd, err := commands.NewStartDeliveryCommand(userID(c).String(), c.Param("orderId"))
	if err != nil {
		return writeError(c, err)
	}
	if err = s.h.StartDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/partner/orders/:orderId/complete.
func (s *Server) CompleteDelivery(c echo.Context) error {
	cmd, err := commands.NewCompleteDeliveryCommand(userID(c).String(), c.Param("orderId"))
	if err != nil {
		return writeError(c, err)
	}
	if err = s.h.FinishDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CancelDelivery handles POST /api/v1/partner/orders/:orderId/cancel.
func (s *Server) CancelDelivery(c echo.Context) error {
	cmd, err := commands.NewCancelDeliveryCommand(userID(c).String(), c.Param("orderId"))
	if err != nil {
		return writeError(c, err)
	}
	if err = s.h.FinishDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetPickup handles GET /api/v1/partner/orders/:orderId/stores/:storeId/pickup.
func (s *Server) GetPickup(c echo.Context) error {
	q, err := queries.NewGetPickupStatusQuery(userID(c).String(), c.Param("orderId"), c.Param("storeId"))
	if err != nil {
		return writeError(c, err)
	}
	res, err := s.h.PickupStatus.Handle(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	p := Pickup{StoreID: res.StoreID, PickedUp: res.PickedUp, Share: res.Share}
	if res.Store != nil {
		p.Store = res.Store
	}
	return c.JSON(http.StatusOK, p)
}

// CompletePickup handles POST /api/v1/partner/orders/:orderId/stores/:storeId/pickup.
func (s *Server) CompletePickup(c echo.Context) error {
	cmd, err := commands.NewCompletePickupCommand(userID(c).String(), c.Param("orderId"), c.Param("storeId"))
	if err != nil {
		return writeError(c, err)
	}
	if err = s.h.CompletePickup.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
