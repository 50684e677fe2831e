package main

import (
	"context"
	"log"

	"github.com/mycompany/credit-platform/internal/authadmin"
	"github.com/mycompany/credit-platform/internal/authservice/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := authadmin.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
