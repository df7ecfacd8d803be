package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/civicgrid/proposal-service/proposalservice"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	if err := proposalservice.Run(); err != nil {
		os.Exit(1)
	}
}
