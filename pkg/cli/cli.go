// Package cli provides the command-line interface for appium-healer.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/appium-healer/pkg/config"
	"github.com/devicelab-dev/appium-healer/pkg/logger"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to config.yaml (default: <home>/config.yaml)",
		EnvVars: []string{"APPIUM_HEALER_CONFIG"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable verbose logging",
		EnvVars: []string{"APPIUM_HEALER_VERBOSE"},
	},
}

// Execute runs the CLI.
func Execute() {
	app := &cli.App{
		Name:    "appium-healer",
		Usage:   "Self-healing locator repository for Appium test automation",
		Version: Version,
		Description: `Appium Healer resolves logical element identifiers to working locator
strategies, falling back through registered alternatives when an app's
markup drifts and remembering the winning strategy for the next run.

Examples:
  appium-healer validate
  appium-healer history
  appium-healer stats`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			statsCommand,
			historyCommand,
			validateCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the workspace configuration for a command.
func loadConfig(c *cli.Context) (*config.Config, error) {
	logger.InitStderr()
	logger.SetVerbose(c.Bool("verbose"))

	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadFromDir(config.GetHome())
}
