package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/campusmerch/store/internal/config"
	"github.com/campusmerch/store/internal/handler"
	"github.com/campusmerch/store/internal/middleware"
	"github.com/campusmerch/store/internal/queue"
	"github.com/campusmerch/store/internal/repository"
	"github.com/campusmerch/store/internal/router"
	"github.com/campusmerch/store/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional
	cfg := config.Load()

	st := store.New(cfg.DBFile)
	users := repository.NewUserRepo(st)
	products := repository.NewProductRepo(st)
	orders := repository.NewOrderRepo(st)

	e := echo.New()
	e.HideBanner = true

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable: rate limiting and response caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterUsers(e, handler.NewAuthHandler(cfg, users))
	router.RegisterProducts(e, handler.NewProductHandler(products), cfg.JWTSecret, cache)
	router.RegisterOrders(e, handler.NewOrderHandler(orders, cfg.QueueEnabled), cfg.JWTSecret)

	if cfg.QueueEnabled {
		go queue.StartOrderConsumer()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, db=%s)", addr, cfg.Env, cfg.DBFile)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
