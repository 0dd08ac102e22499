// ftactl FTA 原产地判定管理工具
//
// Usage:
//
//	ftactl migrate
//	ftactl seed
//	ftactl parts --type FERT
//	ftactl bom EV_BATTERY_PACK
//	ftactl determine EV_BATTERY_PACK
//	ftactl history --part EV_BATTERY_PACK --limit 20
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "ftactl",
		Usage:   "FTA origin determination admin tool",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config/config.yaml",
				Usage:   "Path to config file",
				EnvVars: []string{"FTA_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "dsn",
				Usage: "Override database.dsn",
			},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			seedCommand(),
			partsCommand(),
			bomCommand(),
			determineCommand(),
			historyCommand(),
		},
	}
}
