package main // mailer worker entry point

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/blog-auth-api/internal/config"
	"github.com/iliyamo/blog-auth-api/internal/mailer"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadMail()
	consumer := mailer.NewConsumer(cfg.RabbitURL, mailer.NewSender(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("mailer worker started")

	// Reconnect with a flat backoff until shutdown; a broker restart
	// should not take the worker down with it.
	for {
		if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("mailer: consumer stopped: %v", err)
		}
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
}
