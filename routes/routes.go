package routes

import (
	"storefront/admin"
	"storefront/auth"
	"storefront/cart"
	"storefront/catalog"
	"storefront/middleware"
	"storefront/orders"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, svc *auth.Service, mw *middleware.Authenticator) {
	router.POST("/api/auth/register", svc.Register)
	router.POST("/api/auth/login", svc.Login)
	router.POST("/api/auth/logout", mw.Authenticate(svc.Logout))
	router.GET("/api/auth/me", mw.Authenticate(svc.Me))
}

func AddCatalogRoutes(router *httprouter.Router) {
	router.GET("/api/products", catalog.GetProducts)
	router.GET("/api/products/:productid", catalog.GetProduct)
	router.GET("/api/categories", catalog.GetCategories)
	router.GET("/api/categories/:categoryid", catalog.GetCategory)
	router.GET("/api/categories/:categoryid/products", catalog.GetCategoryProducts)
}

// Cart routes are session-keyed and work for anonymous shoppers; a bearer
// token is accepted but not required.
func AddCartRoutes(router *httprouter.Router, h *cart.Handler, mw *middleware.Authenticator) {
	router.GET("/api/cart", mw.OptionalAuth(h.GetCart))
	router.POST("/api/cart/items", mw.OptionalAuth(h.AddItem))
	router.PUT("/api/cart/items/:productid", mw.OptionalAuth(h.UpdateItem))
	router.DELETE("/api/cart/items/:productid", mw.OptionalAuth(h.RemoveItem))
	router.DELETE("/api/cart", mw.OptionalAuth(h.ClearCart))
}

func AddOrderRoutes(router *httprouter.Router, h *orders.Handler, mw *middleware.Authenticator) {
	router.POST("/api/orders", mw.Authenticate(h.Checkout))
	router.GET("/api/orders/mine", mw.Authenticate(h.MyOrders))
	router.GET("/api/orders/order/:orderid", mw.Authenticate(h.GetOrder))
	router.GET("/api/orders/order/:orderid/invoice", mw.Authenticate(h.Invoice))
}

func AddAdminRoutes(router *httprouter.Router, mw *middleware.Authenticator) {
	router.GET("/api/admin/stats", mw.AdminOnly(admin.GetStats))

	router.GET("/api/admin/users", mw.AdminOnly(admin.ListUsers))
	router.POST("/api/admin/users", mw.AdminOnly(admin.CreateUser))
	router.PUT("/api/admin/users/:userid", mw.AdminOnly(admin.UpdateUser))
	router.DELETE("/api/admin/users/:userid", mw.AdminOnly(admin.DeleteUser))

	router.GET("/api/admin/products", mw.AdminOnly(admin.ListProducts))
	router.POST("/api/admin/products", mw.AdminOnly(admin.CreateProduct))
	router.PUT("/api/admin/products/:productid", mw.AdminOnly(admin.UpdateProduct))
	router.DELETE("/api/admin/products/:productid", mw.AdminOnly(admin.DeleteProduct))
	router.PUT("/api/admin/bulk/products/category", mw.AdminOnly(admin.BulkSetCategory))

	router.POST("/api/admin/categories", mw.AdminOnly(admin.CreateCategory))
	router.PUT("/api/admin/categories/:categoryid", mw.AdminOnly(admin.UpdateCategory))
	router.DELETE("/api/admin/categories/:categoryid", mw.AdminOnly(admin.DeleteCategory))

	router.GET("/api/admin/orders", mw.AdminOnly(admin.ListOrders))
	router.PUT("/api/admin/orders/:orderid/status", mw.AdminOnly(admin.UpdateOrderStatus))
	router.PUT("/api/admin/bulk/orders/status", mw.AdminOnly(admin.BulkUpdateOrderStatus))
}
