package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/jhoicas/facturador/cmd/invoicectl/cmd"
	"github.com/jhoicas/facturador/pkg/config"
	"github.com/jhoicas/facturador/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("aviso: no se cargó .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cargar configuración: %v", err)
	}

	l := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	cmd.Execute(cfg, l)
}
