package routes

import (
	"github.com/Mathdino/cardapio-backend/controllers"
	"github.com/Mathdino/cardapio-backend/middleware"

	"github.com/gin-gonic/gin"
)

// Controllers bundles everything the router wires up.
type Controllers struct {
	Auth    *controllers.AuthController
	Store   *controllers.StoreController
	Product *controllers.ProductController
	Coupon  *controllers.CouponController
	Cart    *controllers.CartController
	Order   *controllers.OrderController
	Address *controllers.AddressController
}

// Register sets up all routes. Storefront routes are public and scoped by
// store slug; dashboard routes require the owner token.
func Register(r *gin.Engine, c *Controllers, jwtSecret string) {
	r.POST("/auth/login", middleware.LoginRateLimit(), c.Auth.Login)
	r.GET("/address/:cep", c.Address.LookupCEP)
	r.GET("/orders/:code", c.Order.GetOrder)

	stores := r.Group("/stores/:slug")
	{
		stores.GET("", c.Store.GetStoreBySlug)
		stores.GET("/menu", c.Product.GetMenu)
		stores.GET("/slots", c.Order.GetSlots)
		stores.POST("/coupons/validate", c.Coupon.ValidateCoupon)

		stores.GET("/cart", c.Cart.GetCart)
		stores.POST("/cart/items", c.Cart.AddItem)
		stores.PUT("/cart/items/:itemID", c.Cart.UpdateItem)
		stores.DELETE("/cart/items/:itemID", c.Cart.RemoveItem)
		stores.POST("/cart/coupon", c.Cart.ApplyCoupon)
		stores.DELETE("/cart/coupon", c.Cart.RemoveCoupon)

		stores.POST("/orders", c.Order.Checkout)
		stores.GET("/orders", c.Order.ListCustomerOrders)
	}

	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.OwnerAuth(jwtSecret))
	{
		dashboard.GET("/store", c.Store.GetMyStore)
		dashboard.PUT("/store", c.Store.UpdateStore)
		dashboard.PUT("/store/hours", c.Store.SetBusinessHours)

		dashboard.POST("/categories", c.Product.CreateCategory)
		dashboard.PUT("/categories/:id", c.Product.UpdateCategory)
		dashboard.DELETE("/categories/:id", c.Product.DeleteCategory)

		dashboard.POST("/products", c.Product.CreateProduct)
		dashboard.PUT("/products/:id", c.Product.UpdateProduct)
		dashboard.DELETE("/products/:id", c.Product.DeleteProduct)

		dashboard.POST("/coupons", c.Coupon.CreateCoupon)
		dashboard.GET("/coupons", c.Coupon.ListCoupons)
		dashboard.PUT("/coupons/:id", c.Coupon.UpdateCoupon)
		dashboard.PATCH("/coupons/:id/toggle", c.Coupon.ToggleCoupon)
		dashboard.DELETE("/coupons/:id", c.Coupon.DeleteCoupon)

		dashboard.GET("/orders", c.Order.ListStoreOrders)
		dashboard.PATCH("/orders/:id/status", c.Order.UpdateOrderStatus)
	}
}
