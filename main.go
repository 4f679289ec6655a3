package main

import (
	"log"

	"orders-api/config"
	_ "orders-api/docs"
	"orders-api/server"
)

// @title Orders API
// @version 1.0
// @description Users and orders CRUD with JWT bearer authentication.
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := server.Run(cfg); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
