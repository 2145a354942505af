package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/sabasm/user/internal/app"
	"github.com/sabasm/user/internal/config"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCLI() *cli.App {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   defaultConfigPath,
		Usage:   "path to configuration file",
		EnvVars: []string{"APP_CONFIG"},
	}

	a := cli.NewApp()
	a.Name = "user"
	a.Usage = "user management service"
	a.Flags = []cli.Flag{configFlag}
	a.Action = serve
	a.Commands = []*cli.Command{
		{
			Action:      serve,
			Name:        "serve",
			Usage:       "Start the HTTP API",
			Flags:       []cli.Flag{configFlag},
			Description: `Loads the configuration, opens the configured user store and serves /api/v1/users until SIGINT or SIGTERM.`,
		},
		{
			Action:      migrateStore,
			Name:        "migrate",
			Usage:       "Create or update the users table",
			Flags:       []cli.Flag{configFlag},
			Description: `Runs the schema migration for the sqlite and postgres drivers. Does nothing for the memory driver.`,
		},
	}
	return a
}

func loadConfig(cctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func serve(cctx *cli.Context) error {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}
	return a.Run()
}

func migrateStore(cctx *cli.Context) error {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	if err := app.Migrate(cfg); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
