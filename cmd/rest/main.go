package main

import (
	"context"
	"log"

	"quicknotes-be/internal/bootstrap"
	"quicknotes-be/internal/config"
	"quicknotes-be/internal/model"
	"quicknotes-be/internal/server"
	"quicknotes-be/internal/tracer"
	"quicknotes-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	var gormDB *gorm.DB
	var err error
	if cfg.Database.Connection != "" {
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection)
	} else {
		// Local development fallback
		gormDB, err = database.NewSQLiteDB("quicknotes.db")
	}
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	if err := model.AutoMigrate(gormDB); err != nil {
		log.Panicf("Unable to migrate database: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Mirror Consumer...")
		if err := container.MirrorConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Mirror Consumer Error: %v", err)
		}
	}()

	if container.EventRecorderService != nil {
		if err := container.EventRecorderService.Start(); err != nil {
			log.Printf("Background Event Recorder Error: %v", err)
		}
	}

	if err := container.Scheduler.Start(); err != nil {
		log.Printf("Scheduler Error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
