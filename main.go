// Package main renthub API.
//
// @title           RentHub API
// @version         1.0
// @description     accessory rental marketplace (products, carts, orders, wishlists, reviews).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"renthub/app/echoServer"
	authctrl "renthub/app/echoServer/controller/auth"
	cartctrl "renthub/app/echoServer/controller/cart"
	lenderorderctrl "renthub/app/echoServer/controller/lenderorder"
	orderctrl "renthub/app/echoServer/controller/order"
	productctrl "renthub/app/echoServer/controller/product"
	reviewctrl "renthub/app/echoServer/controller/review"
	wishlistctrl "renthub/app/echoServer/controller/wishlist"
	"renthub/app/echoServer/validation"
	"renthub/config"
	cartrepo "renthub/repository/cart"
	"renthub/repository/events"
	orderrepo "renthub/repository/order"
	productrepo "renthub/repository/product"
	reviewrepo "renthub/repository/review"
	stockrepo "renthub/repository/stock"
	userrepo "renthub/repository/user"
	wishlistrepo "renthub/repository/wishlist"
	authsvc "renthub/service/auth"
	cartsvc "renthub/service/cart"
	ordersvc "renthub/service/order"
	productsvc "renthub/service/product"
	reviewsvc "renthub/service/review"
	wishlistsvc "renthub/service/wishlist"
	"renthub/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// product-detail cache, optional
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := cache.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, caching disabled", "err", err)
			cache = nil
		}
	}

	// order event publisher, optional
	var pub events.Publisher = events.Noop{}
	if cfg.AMQPURL != "" {
		p, err := events.NewAMQP(cfg.AMQPURL, "orders")
		if err != nil {
			log.Warn("amqp unreachable, events disabled", "err", err)
		} else {
			pub = p
			defer pub.Close()
		}
	}

	// repos
	ur := userrepo.New(db.DB)
	pr := productrepo.New(db.DB)
	cr := cartrepo.New(db.DB)
	or := orderrepo.New(db.DB)
	wr := wishlistrepo.New(db.DB)
	rr := reviewrepo.New(db.DB)
	sr := stockrepo.New()

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	ps := productsvc.New(pr, cache)
	cs := cartsvc.New(db, cr, sr, ur)
	ors := ordersvc.New(db, or, sr, cr, pr, ur, pub)
	ws := wishlistsvc.New(wr)
	rs := reviewsvc.New(rr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	productC := &productctrl.Controller{Svc: ps, V: v, Log: log}
	cartC := &cartctrl.Controller{Svc: cs, V: v, Log: log}
	orderC := &orderctrl.Controller{Svc: ors, V: v, Log: log}
	lenderOrderC := &lenderorderctrl.Controller{Svc: ors, V: v, Log: log}
	wishlistC := &wishlistctrl.Controller{Svc: ws, V: v, Log: log}
	reviewC := &reviewctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:        authC,
		Product:     productC,
		Cart:        cartC,
		Order:       orderC,
		LenderOrder: lenderOrderC,
		Wishlist:    wishlistC,
		Review:      reviewC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
