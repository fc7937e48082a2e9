package main

import (
	"log"

	"tricks/config"
	"tricks/internal/database"
	"tricks/internal/game"
	"tricks/internal/server"
)

func main() {
	cfg := config.Load()

	store, err := database.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open history store:", err)
	}
	defer store.Close()

	manager := game.NewManager(store)
	handler := server.NewHandler(manager, store, cfg.TargetScore)
	router := server.NewRouter(handler)

	addr := cfg.BindAddress + ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
