package main

import (
	"context"
	"log"

	"github.com/mycompany/credit-platform/internal/creditservice"
	"github.com/mycompany/credit-platform/internal/creditservice/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := creditservice.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
