package main

import (
	"context"
	"fmt"
	"log"

	"github.com/kaziabulhasib/EasyPay-server/internal/config"
	"github.com/kaziabulhasib/EasyPay-server/internal/database"
	"github.com/kaziabulhasib/EasyPay-server/internal/repository"
	"github.com/kaziabulhasib/EasyPay-server/internal/router"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// connect to MongoDB and verify with a ping
	ctx := context.Background()
	client, db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			log.Printf("disconnect database: %v", err)
		}
	}()
	log.Printf("connected to MongoDB database %q", cfg.Database.Name)

	// uniqueness indexes on email / mobile
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	// setup router
	repo := repository.NewMongoUserRepository(db)
	r := router.SetupRouter(cfg, repo)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
