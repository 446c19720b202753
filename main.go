package main

import (
	"log"

	"task-server/confs"
	"task-server/db"
	"task-server/server"
)

func main() {
	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// connect to database
	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer database.Close()
	log.Println("Database connection established and migrated")

	// run server
	srv := server.NewServer(cfg, database)
	log.Printf("Server running on http://%s", cfg.Addr())
	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
