package main

import (
	"context"
	"log"

	"github.com/mycompany/credit-platform/internal/authservice"
	"github.com/mycompany/credit-platform/internal/authservice/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := authservice.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
