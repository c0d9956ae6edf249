package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/jakechorley/gameday/cmd/gameday/commands"
)

func main() {
	// Optional .env for local development; config files carry the rest
	_ = godotenv.Load()

	if err := commands.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
