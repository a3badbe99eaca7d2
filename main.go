package main

import (
	"log"

	"buildings-server/config"
	"buildings-server/di"
)

func main() {
	cfg := config.Load()

	container, err := di.NewContainer(cfg)
	if err != nil {
		log.Fatalf("[MAIN] Failed to initialize container: %v", err)
	}
	defer container.Close()

	log.Println("[MAIN] starting server!")
	container.BuildingsHttpServer.Start()
}
