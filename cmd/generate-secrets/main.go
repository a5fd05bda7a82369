package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/smarttransit/metro-ticketing/internal/utils"
)

func main() {
	pin := flag.String("pin", "", "terminal PIN to hash for terminals.pin_hash")
	flag.Parse()

	fmt.Println("===========================================")
	fmt.Println("Secret Generator for Metro Ticketing")
	fmt.Println("===========================================")
	fmt.Println()

	secret, err := utils.GenerateJWTSecret()
	if err != nil {
		log.Fatalf("Failed to generate secret: %v", err)
	}

	fmt.Println("Add this to your .env file:")
	fmt.Println()
	fmt.Printf("JWT_SECRET=%s\n", secret)

	if *pin != "" {
		hash, err := utils.HashPIN(*pin)
		if err != nil {
			log.Fatalf("Failed to hash PIN: %v", err)
		}
		fmt.Println()
		fmt.Println("Terminal PIN hash:")
		fmt.Println()
		fmt.Printf("PIN_HASH=%s\n", hash)
	}

	fmt.Println()
	fmt.Println("IMPORTANT: Keep these secrets safe and never commit them to version control!")
	fmt.Println("===========================================")
}
