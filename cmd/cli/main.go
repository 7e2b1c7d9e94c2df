package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/catalogadmin/internal/cli"
	"github.com/dmitrijs2005/catalogadmin/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadEnvConfig()
	app, err := cli.NewApp(ctx, cfg, os.Stdout)

	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		log.Printf("%v", err)
		app.Close()
		os.Exit(1)
	}

}
