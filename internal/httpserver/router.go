package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/ldelvaux/pcforge/internal/middleware/auth"
)

type Deps struct {
	Auth           *AuthHTTP
	Users          *UserHTTP
	Components     *ComponentHTTP
	Configurations *ConfigurationHTTP
	Addresses      *AddressHTTP
	Orders         *OrderHTTP
	Search         *SearchHTTP
	Tokens         *auth.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.Auth.Register)
	v1.POST("/login", d.Auth.Login)
	v1.GET("/me", d.Auth.Me, d.Tokens.RequireLogin)

	// Catalog reads are public; writes are admin-scoped.
	components := v1.Group("/components")
	components.GET("", d.Components.ListComponents)
	components.GET("/search", d.Search.SearchComponents)
	components.GET("/:id", d.Components.GetComponent)
	components.POST("", d.Components.CreateComponent, d.Tokens.AdminOnly)
	components.PUT("/:id", d.Components.UpdateComponent, d.Tokens.AdminOnly)
	components.DELETE("/:id", d.Components.DeleteComponent, d.Tokens.AdminOnly)

	// Listing and destroying users is admin-only across the board.
	users := v1.Group("/users")
	users.GET("", d.Users.ListUsers, d.Tokens.AdminOnly)
	users.POST("", d.Users.CreateUser, d.Tokens.AdminOnly)
	users.GET("/:id", d.Users.GetUser, d.Tokens.RequireLogin)
	users.PUT("/:id", d.Users.UpdateUser, d.Tokens.RequireLogin)
	users.DELETE("/:id", d.Users.DeleteUser, d.Tokens.AdminOnly)

	addresses := v1.Group("/addresses", d.Tokens.RequireLogin)
	addresses.GET("", d.Addresses.ListAddresses, d.Tokens.AdminOnly)
	addresses.GET("/:id", d.Addresses.GetAddress)
	addresses.POST("", d.Addresses.CreateAddress)
	addresses.PUT("/:id", d.Addresses.UpdateAddress)
	addresses.DELETE("/:id", d.Addresses.DeleteAddress)

	configurations := v1.Group("/configurations", d.Tokens.RequireLogin)
	configurations.GET("", d.Configurations.ListConfigurations)
	configurations.GET("/:id", d.Configurations.GetConfiguration)
	configurations.POST("", d.Configurations.CreateConfiguration)
	configurations.PUT("/:id", d.Configurations.UpdateConfiguration)
	configurations.DELETE("/:id", d.Configurations.DeleteConfiguration)

	orders := v1.Group("/orders", d.Tokens.RequireLogin)
	orders.GET("", d.Orders.ListOrders)
	orders.GET("/:id", d.Orders.GetOrder)
	orders.POST("/checkout", d.Orders.Checkout)
	orders.PUT("/:id", d.Orders.UpdateOrder, d.Tokens.AdminOnly)
	orders.DELETE("/:id", d.Orders.DeleteOrder, d.Tokens.AdminOnly)
}
