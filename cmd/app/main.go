package main

import (
	"fooddelivery/cmd"

	"github.com/labstack/gommon/log"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("fooddelivery: %v", err)
	}
}
