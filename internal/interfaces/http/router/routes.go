package router

import (
	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/eyedist/backend/internal/interfaces/http/handler"
	"github.com/eyedist/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler mounted under the API group
type Handlers struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Regions      []*handler.RegionHandler
	Attributes   *handler.AttributeHandler
	Products     *handler.ProductHandler
	Parties      *handler.PartyHandler
	Distributors *handler.DistributorHandler
	Salesmen     *handler.SalesmanHandler
	Orders       *handler.OrderHandler
	Expenses     *handler.ExpenseHandler
	Events       *handler.EventHandler
	Dashboard    *handler.DashboardHandler

	// Idempotency guards order and expense creation; nil disables it
	Idempotency gin.HandlerFunc
}

var regionPaths = map[geography.Level]string{
	geography.LevelCountry: "/countries",
	geography.LevelState:   "/states",
	geography.LevelCity:    "/cities",
	geography.LevelZone:    "/zones",
}

// RegionPath returns the collection path for a geography level
func RegionPath(level geography.Level) string {
	return regionPaths[level]
}

// DomainGroups builds the route table. Authentication runs on the API group
// (see WithMiddleware); the groups here only add role checks.
func DomainGroups(h Handlers) []RouteRegistrar {
	admin := middleware.RequireAdmin()
	reviewer := middleware.RequireReviewer()
	dedupe := h.Idempotency
	if dedupe == nil {
		dedupe = func(c *gin.Context) { c.Next() }
	}

	groups := []RouteRegistrar{
		authGroup(h.Auth),
		NewDomainGroup("users", "/users").
			Use(admin).
			POST("", h.Users.Create).
			GET("", h.Users.List).
			GET("/:id", h.Users.GetByID).
			PUT("/:id", h.Users.Update).
			DELETE("/:id", h.Users.Delete),
	}

	for _, rh := range h.Regions {
		g := NewDomainGroup(string(rh.Level()), RegionPath(rh.Level())).
			GET("", rh.List).
			GET("/:id", rh.GetByID).
			POST("", reviewer, rh.Create).
			PUT("/:id", reviewer, rh.Update).
			DELETE("/:id", reviewer, rh.Delete)
		if child := rh.Level().Child(); child != "" {
			g.GET("/:id"+RegionPath(child), rh.Children)
		}
		groups = append(groups, g)
	}

	groups = append(groups,
		NewDomainGroup("attributes", "/attributes").
			GET("", h.Attributes.ListAll).
			GET("/:kind", h.Attributes.List).
			GET("/:kind/:id", h.Attributes.GetByID).
			POST("/:kind", reviewer, h.Attributes.Create).
			PUT("/:kind/:id", reviewer, h.Attributes.Update).
			DELETE("/:kind/:id", reviewer, h.Attributes.Delete),

		NewDomainGroup("products", "/products").
			GET("", h.Products.List).
			GET("/search", h.Products.Search).
			GET("/:id", h.Products.GetByID).
			POST("", reviewer, h.Products.Create).
			PUT("/:id", reviewer, h.Products.Update).
			DELETE("/:id", reviewer, h.Products.Delete).
			POST("/:id/image", reviewer, h.Products.UploadImage),

		NewDomainGroup("parties", "/parties").
			POST("", h.Parties.Create).
			GET("", h.Parties.List).
			GET("/:id", h.Parties.GetByID).
			PUT("/:id", h.Parties.Update).
			DELETE("/:id", h.Parties.Delete),

		NewDomainGroup("distributors", "/distributors").
			POST("", h.Distributors.Create).
			GET("", h.Distributors.List).
			GET("/:id", h.Distributors.GetByID).
			PUT("/:id", h.Distributors.Update).
			DELETE("/:id", h.Distributors.Delete),

		NewDomainGroup("salesmen", "/salesmen").
			POST("", h.Salesmen.Create).
			GET("", h.Salesmen.List).
			GET("/:id", h.Salesmen.GetByID).
			PUT("/:id", h.Salesmen.Update).
			DELETE("/:id", h.Salesmen.Delete),

		NewDomainGroup("orders", "/orders").
			POST("", dedupe, h.Orders.Create).
			GET("", h.Orders.List).
			GET("/:id", h.Orders.GetByID).
			PUT("/:id", h.Orders.Update).
			PATCH("/:id/status", h.Orders.UpdateStatus).
			GET("/:id/invoice", h.Orders.Invoice).
			DELETE("/:id", h.Orders.Delete),

		NewDomainGroup("expenses", "/expenses").
			GET("/types", h.Expenses.Types).
			POST("", dedupe, h.Expenses.Create).
			GET("", h.Expenses.List).
			GET("/:id", h.Expenses.GetByID).
			PUT("/:id", h.Expenses.Update).
			POST("/:id/bill", h.Expenses.UploadBill).
			POST("/:id/approve", reviewer, h.Expenses.Approve).
			POST("/:id/reject", reviewer, h.Expenses.Reject).
			DELETE("/:id", h.Expenses.Delete),

		NewDomainGroup("events", "/events").
			POST("", h.Events.Create).
			GET("", h.Events.List).
			GET("/:id", h.Events.GetByID).
			PUT("/:id", h.Events.Update).
			DELETE("/:id", h.Events.Delete),

		NewDomainGroup("dashboard", "/dashboard").
			GET("/summary", h.Dashboard.Summary),
	)
	return groups
}

func authGroup(h *handler.AuthHandler) *DomainGroup {
	return NewDomainGroup("auth", "/auth").
		POST("/login", h.Login).
		POST("/refresh", h.RefreshToken).
		POST("/logout", h.Logout).
		GET("/me", h.GetCurrentUser).
		PUT("/me", h.UpdateProfile).
		PUT("/password", h.ChangePassword)
}
