package main

import (
	"context"
	"log"

	"github.com/mycompany/credit-platform/internal/riskservice"
	"github.com/mycompany/credit-platform/internal/riskservice/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := riskservice.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
