package main

import (
	"fmt"
	"os"

	"github.com/Copycatmax/autoScheduler/pkg/auth"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env from project root
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <clientID>")
		os.Exit(1)
	}

	if os.Getenv("API_MASTER_SECRET") == "" {
		fmt.Println("Error: API_MASTER_SECRET not set")
		os.Exit(1)
	}

	clientID := os.Args[1]
	fmt.Printf("Generated key for %s:\n%s\n", clientID, auth.GenerateHMACKey(clientID))
}
