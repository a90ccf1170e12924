package main

import (
	"context"
	"log"

	"goalline/server/internal/app"
	"goalline/server/internal/config"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background(), cfg, app.RunConfig{}); err != nil {
		log.Fatalf("%v", err)
	}
}
