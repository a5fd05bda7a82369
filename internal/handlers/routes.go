package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/metro-ticketing/internal/middleware"
	"github.com/smarttransit/metro-ticketing/internal/models"
	"github.com/smarttransit/metro-ticketing/pkg/jwt"
)

// Routes groups the handlers served under /api/v1
type Routes struct {
	Auth       *TerminalAuthHandler
	Network    *NetworkHandler
	Sales      *SalesHandler
	Reports    *ReportsHandler
	JWTService *jwt.Service
	Logger     *logrus.Logger

	// Terminals re-checks sales terminals on every request when set
	Terminals middleware.TerminalLookup
}

// Register mounts the API on v1
func (r Routes) Register(v1 *gin.RouterGroup) {
	authenticated := middleware.AuthMiddleware(r.JWTService, r.Logger)

	// Authentication routes (public)
	v1.POST("/auth/terminal-login", r.Auth.Login)

	// Network information (public)
	v1.GET("/lines", r.Network.ListLines)
	v1.GET("/lines/:color/stations/:name", r.Network.GetStation)
	v1.GET("/distance", r.Network.Distance)
	v1.GET("/fares/one-way", r.Network.OneWayFare)
	v1.GET("/passes/:serial/validity", r.Sales.PassValidity)

	// Ticket office (cashier terminals)
	sales := v1.Group("")
	sales.Use(authenticated, middleware.RequireRole(models.RoleCashier))
	if r.Terminals != nil {
		sales.Use(middleware.RequireActiveTerminal(r.Terminals, r.Logger))
	}
	{
		sales.POST("/tickets", r.Sales.SellTicket)
		sales.POST("/passes", r.Sales.SellPass)
		sales.POST("/passes/:serial/renew", r.Sales.RenewPass)
	}

	// Reports (admin terminals)
	reports := v1.Group("/reports")
	reports.Use(authenticated, middleware.RequireRole(models.RoleAdmin))
	{
		reports.GET("/income", r.Reports.Income)
		reports.GET("/stations/:name/income", r.Reports.StationIncome)
	}
}
