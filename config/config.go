package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config reads a variable from .env, falling back to the process environment.
func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Print(".env file not found, using process environment")
	}
	return os.Getenv(key)
}
