package main

import (
	"context"
	"log"

	"github.com/Apurer/go-order-api-server/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("order API failed: %v", err)
	}
}
