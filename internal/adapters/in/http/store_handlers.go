package http

import (
	"net/http"

	"localstore/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetStoreOrders handles GET /api/v1/store/orders.
func (s *Server) GetStoreOrders(c echo.Context) error {
	q, err := queries.NewGetStoreOrdersQuery(userID(c).String())
	if err != nil {
		return writeError(c, err)
	}
	views, err := s.h.StoreOrders.Handle(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toStoreOrders(views))
}

// GetStoreArchive handles GET /api/v1/store/archive?year=&month=&day=.
func (s *Server) GetStoreArchive(c echo.Context) error {
	q, err := queries.NewGetStoreArchiveQuery(
		userID(c).String(),
		c.QueryParam("year"),
		c.QueryParam("month"),
		c.QueryParam("day"),
	)
	if err != nil {
		return writeError(c, err)
	}
	res, err := s.h.StoreArchive.Handle(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Archive{
		Level:  res.Level.String(),
		Keys:   res.Keys,
		Orders: toStoreOrders(res.Orders),
	})
}
