// Package httpapi exposes the order and catalog bounded contexts over HTTP.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// Routes is the list of the server routes.
type Routes []Route

// ApiHandleFunctions groups the per-context handler bundles.
type ApiHandleFunctions struct {
	OrderAPI   OrderAPI
	CatalogAPI CatalogAPI
}

// NewRouter returns a new gin router with all API routes registered.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine registers all API routes on an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func getRoutes(handleFunctions ApiHandleFunctions) Routes {
	return Routes{
		{
			"PlaceOrder",
			http.MethodPost,
			"/v1/orders",
			handleFunctions.OrderAPI.PlaceOrder,
		},
		{
			"ListOrders",
			http.MethodGet,
			"/v1/orders",
			handleFunctions.OrderAPI.ListOrders,
		},
		{
			"GetOrderById",
			http.MethodGet,
			"/v1/orders/:orderId",
			handleFunctions.OrderAPI.GetOrderById,
		},
		{
			"ShipOrder",
			http.MethodPost,
			"/v1/orders/:orderId/ship",
			handleFunctions.OrderAPI.ShipOrder,
		},
		{
			"DeliverOrder",
			http.MethodPost,
			"/v1/orders/:orderId/deliver",
			handleFunctions.OrderAPI.DeliverOrder,
		},
		{
			"CancelOrder",
			http.MethodPost,
			"/v1/orders/:orderId/cancel",
			handleFunctions.OrderAPI.CancelOrder,
		},
		{
			"AddProduct",
			http.MethodPost,
			"/v1/products",
			handleFunctions.CatalogAPI.AddProduct,
		},
		{
			"ListProducts",
			http.MethodGet,
			"/v1/products",
			handleFunctions.CatalogAPI.ListProducts,
		},
		{
			"GetProductById",
			http.MethodGet,
			"/v1/products/:productId",
			handleFunctions.CatalogAPI.GetProductById,
		},
		{
			"UpdateProductStock",
			http.MethodPut,
			"/v1/products/:productId/stock",
			handleFunctions.CatalogAPI.UpdateProductStock,
		},
		{
			"DeleteProduct",
			http.MethodDelete,
			"/v1/products/:productId",
			handleFunctions.CatalogAPI.DeleteProduct,
		},
	}
}

func defaultFunc(c *gin.Context) {
	c.Status(http.StatusNotImplemented)
}
