package cli

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/appium-healer/pkg/catalog"
)

var validateCommand = &cli.Command{
	Name:  "validate",
	Usage: "Parse the locator catalog and report problems",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Exit nonzero when the catalog has warnings or no elements",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		cat, err := catalog.Load(cfg.LocatorsDir)
		if err != nil {
			return err
		}

		total := 0
		ids := make([]string, 0, len(cat.Elements))
		for id, strategies := range cat.Elements {
			ids = append(ids, id)
			total += len(strategies)
		}
		sort.Strings(ids)

		fmt.Printf("Catalog: %d elements, %d strategies (%s)\n", len(ids), total, cfg.LocatorsDir)
		if c.Bool("verbose") {
			for _, id := range ids {
				fmt.Printf("  %s (%d strategies)\n", id, len(cat.Elements[id]))
			}
		}

		for _, w := range cat.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}

		if c.Bool("strict") && (len(cat.Warnings) > 0 || len(cat.Elements) == 0) {
			return fmt.Errorf("catalog validation failed: %d elements, %d warnings",
				len(cat.Elements), len(cat.Warnings))
		}
		return nil
	},
}
