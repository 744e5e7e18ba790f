// Package main bookstore API.
//
// @title           Maktaba Bookstore API
// @version         1.0
// @description     Online bookstore: catalog browsing, session-bound basket, checkout.
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/David-Langat/Maktaba/app/echoServer"
	basketctrl "github.com/David-Langat/Maktaba/app/echoServer/controller/basket"
	bookctrl "github.com/David-Langat/Maktaba/app/echoServer/controller/book"
	checkoutctrl "github.com/David-Langat/Maktaba/app/echoServer/controller/checkout"
	"github.com/David-Langat/Maktaba/app/echoServer/validation"
	"github.com/David-Langat/Maktaba/config"
	bookrepo "github.com/David-Langat/Maktaba/repository/book"
	orderrepo "github.com/David-Langat/Maktaba/repository/order"
	sessionrepo "github.com/David-Langat/Maktaba/repository/session"
	basketsvc "github.com/David-Langat/Maktaba/service/basket"
	catalogsvc "github.com/David-Langat/Maktaba/service/catalog"
	checkoutsvc "github.com/David-Langat/Maktaba/service/checkout"
	"github.com/David-Langat/Maktaba/util/database"

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

	// session store
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	// repos
	br := bookrepo.New(db)
	or := orderrepo.New(db)
	sr := sessionrepo.New(rdb, time.Duration(cfg.SessionTTLHours)*time.Hour)

	// services
	cs := catalogsvc.New(br)
	bs := basketsvc.New(or, br, sr)
	chs := checkoutsvc.New(or, sr)

	// controllers
	v := validator.New()
	bookC := &bookctrl.Controller{Svc: cs, V: v, Log: log}
	basketC := &basketctrl.Controller{Svc: bs, V: v, Log: log}
	checkoutC := &checkoutctrl.Controller{Svc: chs, V: v, Log: log}

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
		Book:     bookC,
		Basket:   basketC,
		Checkout: checkoutC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
