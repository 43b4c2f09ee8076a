package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"epiportal-server/di"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "prod"
	}

	container := di.NewContainer(env)

	fmt.Println("starting server!")
	container.EpiPortalHttpServer.Start()
}
