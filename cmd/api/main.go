package main

import (
	"log"
	"os"

	"moonpool/internal/engine"
	"moonpool/internal/handlers"
	"moonpool/internal/routes"
	"moonpool/pkg/config"
)

func main() {
	// Initialize database
	config.InitDB()

	// Run SQL migrations on top of the auto-migrated schema
	if os.Getenv("RUN_MIGRATIONS") != "" {
		config.ExecuteMigrations()
	}

	// Initialize RabbitMQ (optional, will log warning if not configured)
	var opts []engine.Option
	if os.Getenv("RABBITMQ_HOST") != "" {
		config.InitRabbitMQ()
		defer func() {
			if config.RabbitMQ != nil {
				config.RabbitMQ.Close()
			}
		}()

		publisher, err := config.NewPublisher()
		if err != nil {
			log.Fatal("Create publisher failed:", err)
		}
		defer publisher.Close()
		opts = append(opts, engine.WithPublisher(publisher))
		log.Println("RabbitMQ initialized successfully")
	} else {
		log.Println("RabbitMQ not configured, skipping initialization")
	}

	handlers.SetEngine(engine.New(config.DB, opts...))

	// Set up router
	r := routes.SetupRouter()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
