package echoServer

import (
	"net/http"

	"renthub/app/echoServer/controller/auth"
	"renthub/app/echoServer/controller/cart"
	"renthub/app/echoServer/controller/lenderorder"
	"renthub/app/echoServer/controller/order"
	"renthub/app/echoServer/controller/product"
	"renthub/app/echoServer/controller/review"
	"renthub/app/echoServer/controller/wishlist"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth        *auth.Controller
	Product     *product.Controller
	Cart        *cart.Controller
	Order       *order.Controller
	LenderOrder *lenderorder.Controller
	Wishlist    *wishlist.Controller
	Review      *review.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	e.POST("/register", c.Auth.Register)
	e.POST("/login", c.Auth.Login)

	// Auth
	api := e.Group("")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(c.JWTSecret),
		TokenLookup: "header:Authorization:Bearer ",
	}))
	// user_id / role extraction
	api.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tok, ok := ctx.Get("user").(*jwt.Token)
			if !ok || tok == nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			sub, ok := claims["sub"].(float64)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", int64(sub))
			if role, ok := claims["role"].(string); ok {
				ctx.Set("role", role)
			}
			return next(ctx)
		}
	})

	// Products
	api.POST("/products", c.Product.Create)
	api.GET("/products/search", c.Product.Search)
	api.GET("/products/random", c.Product.Random)
	api.GET("/products/:id", c.Product.Detail)
	api.GET("/lender-products/:lenderId", c.Product.ByLender)
	api.PUT("/edit-product/:id", c.Product.Update)
	api.DELETE("/delete-product/:productId", c.Product.Delete)

	// Cart
	api.POST("/cart", c.Cart.Add)
	api.PUT("/cart/update-quantity", c.Cart.UpdateQuantity)
	api.GET("/cart/:userId", c.Cart.List)
	api.DELETE("/cart/:cartId", c.Cart.Remove)

	// Orders
	api.POST("/orders/place-order", c.Order.Place)
	api.GET("/orders/user-orders/:userId", c.Order.UserOrders)
	api.PUT("/orders/cancel-order/:orderId", c.Order.Cancel)

	// Lender side
	api.GET("/lender-orders/:userId", c.LenderOrder.List)
	api.PUT("/update-order-status/:orderId", c.LenderOrder.UpdateStatus)

	// Wishlist
	api.POST("/wishlist", c.Wishlist.Add)
	api.GET("/wishlist/:userId", c.Wishlist.List)
	api.DELETE("/wishlist", c.Wishlist.Remove)

	// Reviews
	api.POST("/reviews/submit-review", c.Review.Submit)
	api.GET("/reviews/product/:productId", c.Review.ByProduct)
	api.GET("/random-reviews", c.Review.Random)
}
