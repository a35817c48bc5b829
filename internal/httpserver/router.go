package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/permit_tracker/internal/models"
	"github.com/Skotchmaster/permit_tracker/pkg/metrics"
	middleware "github.com/Skotchmaster/permit_tracker/pkg/middleware/auth"
)

type Deps struct {
	DB            *gorm.DB
	AuthHandler   *AuthHTTP
	PermitHandler *PermitHTTP
	Session       *middleware.SessionMiddleware
	Metrics       *metrics.HTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", d.ready)
	if d.Metrics != nil {
		e.GET("/metrics", d.Metrics.Handler())
	}

	user := e.Group("/api/v1/user")
	user.POST("/signup", d.AuthHandler.Signup)
	user.POST("/login", d.AuthHandler.Login)

	private := user.Group("", d.Session.RequireAuth)
	private.GET("/logout", d.AuthHandler.Logout)
	private.POST("/add-permit", d.PermitHandler.CreatePermit)
	private.GET("/permits", d.PermitHandler.GetPermits)
	private.PUT("/edit-permit/:id", d.PermitHandler.EditPermit)
	private.DELETE("/delete-permit/:id", d.PermitHandler.DeletePermit)
	private.GET("/search-permits", d.PermitHandler.SearchPermits)
	private.GET("/accounts", d.AuthHandler.ListAccounts, middleware.RequireRole(string(models.RoleAdmin)))
}

func (d *Deps) ready(c echo.Context) error {
	if d.DB == nil {
		return c.NoContent(http.StatusOK)
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}
