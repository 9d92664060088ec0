package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blog-auth-api/internal/config"
	"github.com/iliyamo/blog-auth-api/internal/database"
	"github.com/iliyamo/blog-auth-api/internal/handler"
	"github.com/iliyamo/blog-auth-api/internal/imagehost"
	"github.com/iliyamo/blog-auth-api/internal/middleware"
	"github.com/iliyamo/blog-auth-api/internal/queue"
	"github.com/iliyamo/blog-auth-api/internal/repository"
	"github.com/iliyamo/blog-auth-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	tokens := repository.NewTokenRepo(db)
	posts := repository.NewPostRepo(db)

	mail := queue.NewPublisher(cfg.RabbitURL)
	images := imagehost.NewClient(cfg.ImageUploadURL, cfg.ImageDestroyURL, cfg.ImageAPIKey)

	// Redis is optional: a nil client disables rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.HideBanner = true

	router.RegisterBase(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, roles, tokens, mail), limiter)
	router.RegisterResources(e, cfg.AccessTokenSecret,
		handler.NewPostHandler(posts, images),
		handler.NewProfileHandler(users),
		handler.NewRoleHandler(roles))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
