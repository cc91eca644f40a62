package main

import (
	"context"
	"log"

	"codegraph/internal/cache"
	"codegraph/internal/engine"
	"codegraph/internal/server"
)

func main() {
	c, err := cache.New()
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	eng := engine.New(c)
	srv := server.New(eng)

	if err := srv.Run(context.Background()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
