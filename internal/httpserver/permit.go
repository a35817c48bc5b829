package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/permit_tracker/internal/filter"
	"github.com/Skotchmaster/permit_tracker/internal/service"
	"github.com/Skotchmaster/permit_tracker/internal/transport"
	"github.com/Skotchmaster/permit_tracker/pkg/logging"
)

type PermitHTTP struct {
	Svc *service.PermitService
}

func (h *PermitHTTP) CreatePermit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "permit.create")

	var req transport.CreatePermitRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_permit_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	permit, err := h.Svc.Create(ctx, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, transport.PermitResponse{Message: "Permit created successfully", Permit: permit})
}

func (h *PermitHTTP) GetPermits(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "permit.list")

	permits, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("get_permits_failed", "status", 500, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.PermitsResponse{Message: "All permits fetched successfully", Permits: permits})
}

func (h *PermitHTTP) EditPermit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "permit.edit")

	var req transport.PatchPermitRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("edit_permit_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	permit, err := h.Svc.Update(ctx, c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.PermitResponse{Message: "Permit updated successfully", Permit: permit})
}

func (h *PermitHTTP) DeletePermit(c echo.Context) error {
	ctx := c.Request().Context()

	permit, err := h.Svc.Delete(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.PermitResponse{Message: "Permit deleted successfully", Permit: permit})
}

func (h *PermitHTTP) SearchPermits(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "permit.search")

	var q transport.SearchQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		l.Warn("search_permits_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	criteria := filter.Criteria{
		PONumber:     q.PONumber,
		PermitNumber: q.PermitNumber,
		PermitStatus: q.PermitStatus,
	}
	var err error
	if criteria.StartDate, err = optionalDate(q.StartDate); err != nil {
		l.Warn("search_permits_error", "status", 400, "reason", "bad startDate", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid startDate")
	}
	if criteria.EndDate, err = optionalDate(q.EndDate); err != nil {
		l.Warn("search_permits_error", "status", 400, "reason", "bad endDate", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid endDate")
	}

	permits, err := h.Svc.Search(ctx, criteria)
	if err != nil {
		return httpError(err)
	}
	if len(permits) == 0 {
		return c.JSON(http.StatusOK, transport.PermitsResponse{Message: "No permits found matching your criteria", Permits: permits})
	}
	return c.JSON(http.StatusOK, transport.PermitsResponse{Message: "Search results fetched successfully", Permits: permits})
}

func optionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := transport.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
