package main

import (
	"context"
	"log"

	"commerce-agent-be/internal/bootstrap"
	"commerce-agent-be/internal/config"
	"commerce-agent-be/internal/server"
	"commerce-agent-be/internal/tracer"
)

func main() {
	// 1. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()
	if cfg.Groq.APIKey == "" {
		log.Fatal("[FATAL] Set GROQ_API_KEY")
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
