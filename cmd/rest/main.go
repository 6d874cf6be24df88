package main

import (
	"context"
	"log"

	"github.com/cihanuluisik/Dge-Advisor/internal/bootstrap"
	"github.com/cihanuluisik/Dge-Advisor/internal/config"
	"github.com/cihanuluisik/Dge-Advisor/internal/server"
	"github.com/cihanuluisik/Dge-Advisor/internal/tracer"
	"github.com/cihanuluisik/Dge-Advisor/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
