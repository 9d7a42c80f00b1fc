package main

import (
	"context"
	"log"
	"os"

	"github.com/adminfiles/cli/internal/buildinfo"
	"github.com/adminfiles/cli/internal/client/cli"
	"github.com/adminfiles/cli/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)

}
