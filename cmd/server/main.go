package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/promptbook/internal/buildinfo"
	"github.com/dmitrijs2005/promptbook/internal/logging"
	"github.com/dmitrijs2005/promptbook/internal/server"
	"github.com/dmitrijs2005/promptbook/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
