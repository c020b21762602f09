package main

import (
	"log"

	"ledgerfix/internal/cli"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	cli.Execute()
}
