package main

import (
	"os"

	"github.com/quickbite/go-backend/internal/app"
	config "github.com/quickbite/go-backend/internal/cfg"
	"github.com/quickbite/go-backend/pkg/logger"
)

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	if err := app.Run(cfg, log); err != nil {
		os.Exit(1)
	}
}
